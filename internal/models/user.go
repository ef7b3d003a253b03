package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID          string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Username    string    `gorm:"column:username;type:varchar(255);uniqueIndex;not null" json:"username"`
	Email       *string   `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	IsCertified bool      `gorm:"column:is_certified;not null;default:false" json:"isCertified"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;default:current_timestamp" json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}

func (m *User) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type UserProfile struct {
	ID           string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkUserID     string    `gorm:"column:fk_user_id;type:uuid;uniqueIndex;not null" json:"fkUserId"`
	DisplayName  string    `gorm:"column:display_name;type:varchar(255)" json:"displayName"`
	ShortBio     string    `gorm:"column:short_bio;type:varchar(255)" json:"shortBio"`
	Thumbnail    *string   `gorm:"column:thumbnail;type:varchar(255)" json:"thumbnail"`
	About        string    `gorm:"column:about;type:text;not null;default:''" json:"about"`
	ProfileLinks JSONMap   `gorm:"column:profile_links;type:jsonb;not null;default:'{}'" json:"profileLinks"`
	CreatedAt    time.Time `gorm:"column:created_at;type:timestamptz;default:current_timestamp" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;type:timestamptz;default:current_timestamp" json:"updatedAt"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}

func (m *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

type VelogConfig struct {
	ID        string  `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	FkUserID  string  `gorm:"column:fk_user_id;type:uuid;uniqueIndex;not null" json:"fkUserId"`
	Title     *string `gorm:"column:title;type:varchar(255)" json:"title"`
	LogoImage *string `gorm:"column:logo_image;type:varchar(255)" json:"logoImage"`
}

func (VelogConfig) TableName() string {
	return "velog_configs"
}

func (m *VelogConfig) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
