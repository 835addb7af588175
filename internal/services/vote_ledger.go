package services

import (
	"errors"

	"devboard/internal/db"
	"devboard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInvalidVoteValue is returned before any storage call is made.
	ErrInvalidVoteValue = errors.New("vote value must be 1 or -1")
	// ErrPostNotFound is returned when the voted post does not exist.
	ErrPostNotFound = errors.New("post not found")
)

// VoteOp is the ledger mutation chosen for a cast.
type VoteOp int

const (
	VoteOpCreate  VoteOp = iota // no prior vote: insert
	VoteOpRetract               // same value again: delete the vote
	VoteOpFlip                  // opposite value: update in place
)

// ResolveVote picks the ledger operation and the exact tally delta for a
// cast against an existing vote value (nil = no prior vote).
//   - create:  tally += value
//   - retract: tally -= value
//   - flip:    tally += 2*value
func ResolveVote(existing *int, value int) (VoteOp, int) {
	switch {
	case existing == nil:
		return VoteOpCreate, value
	case *existing == value:
		return VoteOpRetract, -value
	default:
		return VoteOpFlip, 2 * value
	}
}

// CastVote applies one directional vote for (userID, postID) and returns the
// new tally. The existing-vote read, the ledger mutation and the tally update
// run in a single transaction holding a row lock on the post, so concurrent
// casts on the same post serialize instead of racing the denormalized tally.
func CastVote(userID, postID uint, value int) (int, error) {
	if !models.IsValidVoteValue(value) {
		return 0, ErrInvalidVoteValue
	}

	var tally int
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		var post models.Post
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&post, postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPostNotFound
			}
			return err
		}

		var existing models.Vote
		findErr := tx.Where("user_id = ? AND post_id = ?", userID, postID).
			First(&existing).Error

		var prior *int
		switch {
		case findErr == nil:
			prior = &existing.Value
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			prior = nil
		default:
			return findErr
		}

		op, delta := ResolveVote(prior, value)
		switch op {
		case VoteOpCreate:
			vote := models.Vote{UserID: userID, PostID: postID, Value: value}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case VoteOpRetract:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		case VoteOpFlip:
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return err
			}
		}

		if err := tx.Model(&models.Post{}).Where("id = ?", postID).
			UpdateColumn("upvotes", gorm.Expr("upvotes + ?", delta)).Error; err != nil {
			return err
		}

		tally = post.Upvotes + delta
		return nil
	})
	if err != nil {
		return 0, err
	}
	return tally, nil
}
