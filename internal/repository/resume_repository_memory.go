package repository

import (
	"context"
	"sync"
	"time"

	"github.com/veen-app/veen-api/internal/model"
)

var timeNow = func() time.Time { return time.Now().UTC() }

// MemoryResumeRepository keeps resumes for the lifetime of the process.
// Writes to the same id overwrite each other; the mutex only keeps the map
// itself consistent.
type MemoryResumeRepository struct {
	mu   sync.RWMutex
	byID map[string]model.StoredResume
}

func NewMemoryResumeRepository() *MemoryResumeRepository {
	return &MemoryResumeRepository{byID: make(map[string]model.StoredResume)}
}

func (r *MemoryResumeRepository) Create(ctx context.Context, resume *model.StoredResume) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	prepare(resume)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[resume.ID.String()] = *resume
	return nil
}

func (r *MemoryResumeRepository) FindByID(ctx context.Context, id string) (*model.StoredResume, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	resume, ok := r.byID[id]
	if !ok {
		return nil, ErrResumeNotFound
	}
	return &resume, nil
}

var _ ResumeStore = (*MemoryResumeRepository)(nil)
