package domain

// Video is an uploaded video owned by a user.
type Video struct {
	VideoID     string  `json:"id"`
	VideoFile   string  `json:"videoFile"`
	Thumbnail   string  `json:"thumbnail"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Duration    float64 `json:"duration"` // seconds
	Views       int64   `json:"views"`
	IsPublished bool    `json:"isPublished"`
	OwnerID     string  `json:"ownerId"`
	Timestamps
}

// VideoWithOwner is a video whose owner reference has been replaced by the reduced owner projection.
type VideoWithOwner struct {
	VideoID     string       `json:"id"`
	VideoFile   string       `json:"videoFile"`
	Thumbnail   string       `json:"thumbnail"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    float64      `json:"duration"`
	Views       int64        `json:"views"`
	IsPublished bool         `json:"isPublished"`
	Owner       OwnerSummary `json:"owner"`
	Timestamps
}

// WatchHistoryEntry is one resolved element of a user's watch history.
type WatchHistoryEntry = VideoWithOwner

// VideoSortField is a column videos may be ordered by.
type VideoSortField string

const (
	VideoSortCreatedAt VideoSortField = "createdAt"
	VideoSortViews     VideoSortField = "views"
	VideoSortTitle     VideoSortField = "title"
	VideoSortDuration  VideoSortField = "duration"
)

// IsValid reports whether the field is one of the known sort fields.
func (f VideoSortField) IsValid() bool {
	switch f {
	case VideoSortCreatedAt, VideoSortViews, VideoSortTitle, VideoSortDuration:
		return true
	}
	return false
}

// MediaAsset describes an object stored in the media store.
type MediaAsset struct {
	ObjectKey   string
	URL         string
	ContentType string
	Size        int64
}
