package domain

import "time"

// SourceYouTube tags records ingested from channel feeds. It is not a listing page.
const SourceYouTube SourceID = "youtube"

// Video is an upload read from a channel feed.
type Video struct {
	ID          string
	Title       string
	Description string
	Link        string
	Thumbnail   string
	Channel     string
	ChannelID   string
	PublishedAt time.Time
}

// VideoMeta is the channel metadata persisted alongside a video record.
type VideoMeta struct {
	VideoID     string    `json:"videoId" bson:"videoId"`
	Channel     string    `json:"channel" bson:"channel"`
	ChannelID   string    `json:"channelId" bson:"channelId"`
	PublishedAt time.Time `json:"publishedAt" bson:"publishedAt"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty" bson:"thumbnail,omitempty"`
}

// Meta returns the persisted part of the upload.
func (v Video) Meta() *VideoMeta {
	return &VideoMeta{
		VideoID:     v.ID,
		Channel:     v.Channel,
		ChannelID:   v.ChannelID,
		PublishedAt: v.PublishedAt,
		Description: v.Description,
		Thumbnail:   v.Thumbnail,
	}
}
