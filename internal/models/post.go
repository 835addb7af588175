package models

import (
	"encoding/json"
	"time"
)

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Pid       string    `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	Title     string    `gorm:"size:300;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ImageURLs string    `gorm:"type:text" json:"-"` // JSON-encoded []string of blob store URLs
	Tags      string    `gorm:"type:text;index" json:"-"`
	Upvotes   int       `gorm:"default:0;index" json:"upvotes"` // denormalized vote tally, may go negative
	Views     int       `gorm:"default:0" json:"views"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Filled on read, not stored
	CommentCount int `gorm:"-" json:"comment_count"`
}

// ImageURLList decodes the stored image url column.
func (p *Post) ImageURLList() []string {
	return decodeStringList(p.ImageURLs)
}

// TagList decodes the stored tags column, preserving submit order.
func (p *Post) TagList() []string {
	return decodeStringList(p.Tags)
}

// SetImageURLs encodes urls into the storage column.
func (p *Post) SetImageURLs(urls []string) {
	p.ImageURLs = encodeStringList(urls)
}

// SetTags encodes tags into the storage column.
func (p *Post) SetTags(tags []string) {
	p.Tags = encodeStringList(tags)
}

func encodeStringList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeStringList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	return items
}
