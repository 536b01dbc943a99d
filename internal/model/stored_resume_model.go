package model

import (
	"time"

	"github.com/google/uuid"
)

type StoredResume struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Document   *ResumeDocument `gorm:"serializer:json;type:jsonb" json:"resume,omitempty"`
	RawContent string          `gorm:"type:text" json:"rawContent,omitempty"`
	Filename   string          `json:"filename,omitempty"`
	Approved   bool            `json:"approved"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (r *StoredResume) TableName() string {
	return "resumes"
}
