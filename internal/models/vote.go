package models

import (
	"time"
)

// Vote is the source of truth for a post's tally; Post.Upvotes is a
// derived cache maintained by the vote ledger.
type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_post;index" json:"post_id"`
	Value     int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

// Permitted vote directions.
const (
	VoteUp   = 1
	VoteDown = -1
)

// IsValidVoteValue reports whether v is one of the two permitted values.
func IsValidVoteValue(v int) bool {
	return v == VoteUp || v == VoteDown
}
