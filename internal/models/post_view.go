package models

import (
	"time"
)

// PostView records one unique view per (post, user). Rows are written by
// the view tracker's sync worker; the hot path lives in Redis.
type PostView struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_views_post_user" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_views_post_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
