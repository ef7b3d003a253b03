package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type Post struct {
	ID               string         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkUserID         string         `gorm:"column:fk_user_id;type:uuid;not null;index" json:"fkUserId"`
	Title            string         `gorm:"column:title;type:varchar(255);not null" json:"title"`
	ShortDescription string         `gorm:"column:short_description;type:varchar(255)" json:"shortDescription"`
	Thumbnail        *string        `gorm:"column:thumbnail;type:varchar(500)" json:"thumbnail"`
	URLSlug          string         `gorm:"column:url_slug;type:varchar(255);not null;index" json:"urlSlug"`
	IsPrivate        bool           `gorm:"column:is_private;not null;default:false" json:"isPrivate"`
	Tags             pq.StringArray `gorm:"column:tags;type:text[];not null;default:'{}'" json:"tags"`
	ReleasedAt       *time.Time     `gorm:"column:released_at;type:timestamptz" json:"releasedAt"`
	CreatedAt        time.Time      `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;type:timestamptz;default:current_timestamp" json:"updatedAt"`
}

func (Post) TableName() string {
	return "posts"
}

func (m *Post) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
