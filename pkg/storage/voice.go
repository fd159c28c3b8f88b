package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Voice is a cloned voice record. Deletion is soft: the vendor-side voice
// may already be gone while the local record stays for history.
type Voice struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	UserID string `gorm:"index;not null;default:''"`

	Name         string `gorm:"not null;default:''"`
	Relationship string `gorm:"not null;default:''"`
	Description  string `gorm:"not null;default:''"`
	Gender       string `gorm:"not null;default:''"`
	Language     string `gorm:"not null;default:''"`

	Provider   string `gorm:"not null;default:''"`
	ProviderID string `gorm:"not null;default:''"`
	SampleURL  string `gorm:"not null;default:''"`
	Status     string `gorm:"not null;default:''"`
}

func (s *Store) GetVoice(ctx context.Context, id string) (*Voice, error) {
	var v Voice
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get voice %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetVoice(ctx context.Context, v *Voice) error {
	if err := s.db.Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set voice %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) DeleteVoice(ctx context.Context, id string) error {
	if err := s.db.Delete(&Voice{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete voice %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListVoices(ctx context.Context, page, size int, filter ...Filter) ([]*Voice, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size
	vs := []*Voice{}

	q := s.db.Offset(offset).Limit(size)
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list voices: %w", err)
	}
	return vs, nil
}
