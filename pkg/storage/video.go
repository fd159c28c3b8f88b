package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type Video struct {
	ID        string `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	UserID string `gorm:"index;not null;default:''"`

	Title    string `gorm:"not null;default:''"`
	Script   string `gorm:"not null;default:''"`
	Language string `gorm:"not null;default:''"`
	Style    string `gorm:"not null;default:''"`

	Provider      string `gorm:"not null;default:''"`
	ProviderJobID string `gorm:"not null;default:''"`
	Status        string `gorm:"index;not null;default:''"`

	VideoURL     string  `gorm:"not null;default:''"`
	ThumbnailURL string  `gorm:"not null;default:''"`
	Duration     float32 `gorm:"not null;default:0"`
	MusicTrack   string  `gorm:"not null;default:''"`
	Warnings     string  `gorm:"not null;default:''"`
}

func (s *Store) GetVideo(ctx context.Context, id string) (*Video, error) {
	var v Video
	if err := s.db.First(&v, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("storage: failed to get video %s: %w", id, err)
	}
	return &v, nil
}

func (s *Store) SetVideo(ctx context.Context, v *Video) error {
	if err := s.db.Save(v).Error; err != nil {
		return fmt.Errorf("storage: failed to set video %s: %w", v.ID, err)
	}
	return nil
}

func (s *Store) DeleteVideo(ctx context.Context, id string) error {
	if err := s.db.Delete(&Video{ID: id}, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("storage: failed to delete video %s: %w", id, err)
	}
	return nil
}

func (s *Store) ListVideos(ctx context.Context, page, size int, orderBy string, filter ...Filter) ([]*Video, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * size
	vs := []*Video{}

	q := s.db.Offset(offset).Limit(size)
	for _, f := range filter {
		q = q.Where(f.Query, f.Args...)
	}
	if orderBy != "" {
		q = q.Order(orderBy)
	}
	if err := q.Find(&vs).Error; err != nil {
		return nil, fmt.Errorf("storage: failed to list videos: %w", err)
	}
	return vs, nil
}
