package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Series is an ordered collection of posts owned by one user.
// name and url_slug are unique per owner.
type Series struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkUserID    string    `gorm:"column:fk_user_id;type:uuid;not null;index;uniqueIndex:idx_series_user_name,priority:1;uniqueIndex:idx_series_user_slug,priority:1" json:"fkUserId"`
	Name        string    `gorm:"column:name;type:varchar(255);not null;uniqueIndex:idx_series_user_name,priority:2" json:"name"`
	Description string    `gorm:"column:description;type:text;not null;default:''" json:"description"`
	URLSlug     string    `gorm:"column:url_slug;type:varchar(255);not null;uniqueIndex:idx_series_user_slug,priority:2" json:"urlSlug"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;default:current_timestamp" json:"updatedAt"`
}

func (Series) TableName() string {
	return "series"
}

func (m *Series) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// SeriesPost places a post in a series at a 1-based index.
// For one series the indexes are always exactly {1..n}.
type SeriesPost struct {
	ID         string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkSeriesID string    `gorm:"column:fk_series_id;type:uuid;not null;uniqueIndex:idx_series_posts_index,priority:1;uniqueIndex:idx_series_posts_post,priority:1" json:"fkSeriesId"`
	FkPostID   string    `gorm:"column:fk_post_id;type:uuid;not null;index;uniqueIndex:idx_series_posts_post,priority:2" json:"fkPostId"`
	Index      int       `gorm:"column:index;not null;uniqueIndex:idx_series_posts_index,priority:2" json:"index"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamptz;default:current_timestamp" json:"updatedAt"`
}

func (SeriesPost) TableName() string {
	return "series_posts"
}

func (m *SeriesPost) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
