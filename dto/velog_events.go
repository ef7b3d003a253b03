package dto

type SeriesCreated struct {
	SeriesID string `json:"seriesId"`
	UserID   string `json:"userId"`
	Name     string `json:"name"`
	URLSlug  string `json:"urlSlug"`
}

func (SeriesCreated) EventType() string { return "series.created" }

type SeriesPostAppended struct {
	SeriesID string `json:"seriesId"`
	PostID   string `json:"postId"`
	Index    int    `json:"index"`
}

func (SeriesPostAppended) EventType() string { return "series.post_appended" }

type UserAboutUpdated struct {
	UserID    string `json:"userId"`
	ProfileID string `json:"profileId"`
}

func (UserAboutUpdated) EventType() string { return "user.about_updated" }

type UserImageCreated struct {
	ImageID string `json:"imageId"`
	UserID  string `json:"userId"`
	Type    string `json:"type"`
	Path    string `json:"path"`
}

func (UserImageCreated) EventType() string { return "user_image.created" }
