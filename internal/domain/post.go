// Package domain holds the post/comment model and the metric primitives
// everything else is built on.
package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Comment is a single comment on a post. Comments carry no timestamp in
// the scraped payload; any per-hour distribution derived from them is an
// estimate, not a measurement.
type Comment struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Username  string `json:"username"`
	LikeCount int    `json:"like_count"`
}

// Post is the unit of analysis, matching the raw JSON the scrape service
// returns. It is read-only input: the engine never mutates it.
type Post struct {
	ID            string    `json:"id"`
	Shortcode     string    `json:"shortcode"`
	Username      string    `json:"username"`
	FullName      string    `json:"full_name"`
	Bio           string    `json:"bio"`
	Verified      bool      `json:"verified"`
	ProfilePicURL string    `json:"profile_pic_url"`
	Followers     int       `json:"followers"`
	LikeCount     int       `json:"like_count"`
	ViewCount     int       `json:"view_count"`
	CommentCount  int       `json:"comment_count"`
	Caption       string    `json:"caption"`
	TakenAt       time.Time `json:"taken_at"`
	VideoURL      string    `json:"video_url"`
	ImageURL      string    `json:"image_url"`
	Comments      []Comment `json:"comments"`
}

var hashtagPattern = regexp.MustCompile(`#\w+`)

// Hashtags returns the #tag tokens present in the caption, in order.
func (p *Post) Hashtags() []string {
	return hashtagPattern.FindAllString(p.Caption, -1)
}

// IsVideo reports whether the post carries a video reference.
func (p *Post) IsVideo() bool {
	return p.VideoURL != ""
}

// Validate rejects payloads a core operation cannot analyze. Counters
// may be zero but the comment collection must be present (an empty
// slice is fine, a nil one from a malformed payload is not when
// comments were promised by comment_count).
func (p *Post) Validate() error {
	if p.ID == "" && p.Shortcode == "" {
		return fmt.Errorf("%w: post has no id or shortcode", ErrInvalidInput)
	}
	if p.LikeCount < 0 || p.ViewCount < 0 || p.CommentCount < 0 || p.Followers < 0 {
		return fmt.Errorf("%w: negative counter on post %s", ErrInvalidInput, p.Shortcode)
	}
	return nil
}
