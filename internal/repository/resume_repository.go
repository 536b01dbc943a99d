package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/veen-app/veen-api/internal/model"
	"gorm.io/gorm"
)

var ErrResumeNotFound = errors.New("resume not found")

// ResumeStore is the handle use cases get for saved drafts, uploads and
// approved resumes.
type ResumeStore interface {
	Create(ctx context.Context, resume *model.StoredResume) error
	FindByID(ctx context.Context, id string) (*model.StoredResume, error)
}

// ResumeRepository persists resumes in postgres.
type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

func (r *ResumeRepository) Create(ctx context.Context, resume *model.StoredResume) error {
	prepare(resume)
	return r.db.WithContext(ctx).Create(resume).Error
}

func (r *ResumeRepository) FindByID(ctx context.Context, id string) (*model.StoredResume, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrResumeNotFound
	}
	var resume model.StoredResume
	err = r.db.WithContext(ctx).First(&resume, "id = ?", parsed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrResumeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &resume, nil
}

func prepare(resume *model.StoredResume) {
	if resume.ID == uuid.Nil {
		resume.ID = uuid.New()
	}
	if resume.CreatedAt.IsZero() {
		resume.CreatedAt = timeNow()
	}
}

var _ ResumeStore = (*ResumeRepository)(nil)
