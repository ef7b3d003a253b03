package enum

type EntityType string

const (
	SERIES       EntityType = "SERIES"
	SERIES_POST  EntityType = "SERIES_POST"
	USER_PROFILE EntityType = "USER_PROFILE"
	USER_IMAGE   EntityType = "USER_IMAGE"
)

func (entityType EntityType) String() string {
	return string(entityType)
}
