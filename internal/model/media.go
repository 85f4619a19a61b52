package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// DefaultResolution matches the portrait format the upload widget
// produces when no override is given
var DefaultResolution = Resolution{Width: 1080, Height: 1920}

type Resolution struct {
	Width  int `bson:"width" json:"width"`
	Height int `bson:"height" json:"height"`
}

type MediaRecord struct {
	ID primitive.ObjectID `bson:"_id,omitempty" json:"id"`

	// Owner is set once at creation and never reassigned
	UserID primitive.ObjectID `bson:"user_id" json:"-"`

	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description" json:"description"`
	FileType     string     `bson:"file_type" json:"fileType"`
	FileURL      string     `bson:"file_url" json:"fileUrl"`
	ThumbnailURL string     `bson:"thumbnail_url" json:"thumbnailUrl"`
	Controls     bool       `bson:"controls" json:"controls"`
	Resolution   Resolution `bson:"resolution" json:"resolution"`
	CreatedAt    time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updatedAt"`
}
