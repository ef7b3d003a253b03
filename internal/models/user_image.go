package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserImageType string

const (
	UserImageTypePost    UserImageType = "post"
	UserImageTypeProfile UserImageType = "profile"
)

// UserImage records an image uploaded by a user into object storage.
type UserImage struct {
	ID        string        `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkUserID  string        `gorm:"column:fk_user_id;type:uuid;not null;index" json:"fkUserId"`
	Path      string        `gorm:"column:path;type:varchar(500);not null" json:"path"`
	Filesize  int64         `gorm:"column:filesize;not null;default:0" json:"filesize"`
	Type      UserImageType `gorm:"column:type;type:varchar(50);not null;index" json:"type"`
	RefID     *string       `gorm:"column:ref_id;type:uuid" json:"refId"`
	Tracked   bool          `gorm:"column:tracked;not null;default:false" json:"tracked"`
	CreatedAt time.Time     `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
}

func (UserImage) TableName() string {
	return "user_images"
}

func (m *UserImage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
