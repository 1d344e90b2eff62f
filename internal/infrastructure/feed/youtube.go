package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"GovtJobsScanner/internal/domain"
	"GovtJobsScanner/internal/infrastructure/parser"
	"GovtJobsScanner/internal/ports"
)

// DefaultFeedBase is the public uploads feed endpoint.
const DefaultFeedBase = "https://www.youtube.com/feeds/videos.xml"

// maxDescription caps stored descriptions.
const maxDescription = 400

// YouTubeFeed reads a channel's uploads feed.
type YouTubeFeed struct {
	fetcher ports.PageFetcher
	base    string
}

var _ ports.VideoFeed = (*YouTubeFeed)(nil)

// NewYouTubeFeed builds a reader on top of the page fetcher.
func NewYouTubeFeed(fetcher ports.PageFetcher, base string) *YouTubeFeed {
	if base == "" {
		base = DefaultFeedBase
	}
	return &YouTubeFeed{fetcher: fetcher, base: base}
}

// Latest returns the uploads listed in the channel feed, newest first as served.
func (f *YouTubeFeed) Latest(ctx context.Context, channelID string) ([]domain.Video, error) {
	feedURL := f.base + "?channel_id=" + url.QueryEscape(channelID)

	page, err := f.fetcher.Get(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	if page.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %d", domain.ErrFetchFailed, feedURL, page.StatusCode)
	}

	return Parse(string(page.Body), channelID)
}

// Parse converts a feed document into videos. Entries without a link are skipped.
func Parse(body, channelID string) ([]domain.Video, error) {
	parsed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: feed: %v", domain.ErrParseMismatch, err)
	}

	videos := make([]domain.Video, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if item.Link == "" {
			continue
		}
		videos = append(videos, domain.Video{
			ID:          extensionValue(item.Extensions, "yt", "videoId"),
			Title:       strings.TrimSpace(item.Title),
			Description: truncate(description(item), maxDescription),
			Link:        item.Link,
			Thumbnail:   thumbnail(item),
			Channel:     channelName(parsed, item),
			ChannelID:   channelID,
			PublishedAt: published(item),
		})
	}
	return videos, nil
}

// description prefers the item description and falls back to media:group/media:description.
func description(item *gofeed.Item) string {
	if item.Description != "" {
		return parser.Collapse(item.Description)
	}
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	if descs := groups[0].Children["description"]; len(descs) > 0 {
		return parser.Collapse(descs[0].Value)
	}
	return ""
}

// thumbnail reads media:group/media:thumbnail@url.
func thumbnail(item *gofeed.Item) string {
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	if thumbs := groups[0].Children["thumbnail"]; len(thumbs) > 0 {
		return thumbs[0].Attrs["url"]
	}
	return ""
}

func channelName(parsed *gofeed.Feed, item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	return parsed.Title
}

func published(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return item.PublishedParsed.UTC()
	}
	if item.UpdatedParsed != nil {
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}

func extensionValue(exts ext.Extensions, namespace, name string) string {
	values := exts[namespace][name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
