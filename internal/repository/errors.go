package repository

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserProfileNotFound = errors.New("user profile not found")
	ErrVelogConfigNotFound = errors.New("velog config not found")
	ErrSeriesNotFound      = errors.New("series not found")
	ErrPostNotFound        = errors.New("post not found")
	ErrSeriesAlreadyExists = errors.New("series already exists")
	ErrSeriesPostDuplicate = errors.New("series post index or post already taken")
	ErrInvalidInput        = errors.New("invalid input parameters")
)
