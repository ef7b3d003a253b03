package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/velog-io/velog-api/config"
	"github.com/velog-io/velog-api/interfaces"
	"github.com/velog-io/velog-api/internal/models"
)

type Repositories struct {
	UserRepository      interfaces.UserRepository
	SeriesRepository    interfaces.SeriesRepository
	PostRepository      interfaces.PostRepository
	UserImageRepository interfaces.UserImageRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		UserRepository:      NewUserRepository(db),
		SeriesRepository:    NewSeriesRepository(db),
		PostRepository:      NewPostRepository(db),
		UserImageRepository: NewUserImageRepository(db),
	}
}

func MigrateDB(dbConfig *config.DatabaseConfig, velogDB *gorm.DB) error {
	db, err := velogDB.DB()
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(5)

	err = velogDB.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.VelogConfig{},
		&models.Post{},
		&models.Series{},
		&models.SeriesPost{},
		&models.UserImage{},
	)

	db.SetMaxIdleConns(dbConfig.MaxIdleConn)
	db.SetMaxOpenConns(dbConfig.MaxConn)
	db.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return err
}
