package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"devboard/internal/db"
	"devboard/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm/clause"
)

const (
	viewKeyPrefix = "post:views:"
	viewDirtyKey  = "post:views:dirty"
	viewSyncEvery = 1 * time.Minute
)

// ViewTracker records unique post views in Redis and periodically mirrors
// them into Postgres (post_views rows plus the denormalized posts.views
// counter).
type ViewTracker struct {
	rdb *redis.Client
}

var (
	viewTracker *ViewTracker
	viewOnce    sync.Once
)

// InitViewTracker wires the Redis client and starts the sync worker.
func InitViewTracker(rdb *redis.Client) *ViewTracker {
	viewOnce.Do(func() {
		viewTracker = &ViewTracker{rdb: rdb}
		go viewTracker.worker()
	})
	return viewTracker
}

// GetViewTracker returns the tracker; InitViewTracker must have run.
func GetViewTracker() *ViewTracker {
	return viewTracker
}

func viewKey(postID uint) string {
	return fmt.Sprintf("%s%d", viewKeyPrefix, postID)
}

// RecordView marks that user viewed post. Idempotent per (post, user);
// returns true only for the first view.
func (t *ViewTracker) RecordView(ctx context.Context, postID, userID uint) (bool, error) {
	added, err := t.rdb.SAdd(ctx, viewKey(postID), userID).Result()
	if err != nil {
		return false, err
	}
	if added == 0 {
		return false, nil
	}
	if err := t.rdb.SAdd(ctx, viewDirtyKey, postID).Err(); err != nil {
		return true, err
	}
	return true, nil
}

// ViewCount returns the unique view count for a post. The Redis set is
// authoritative once warm; on a cold key the count is seeded from Postgres.
func (t *ViewTracker) ViewCount(ctx context.Context, postID uint) (int64, error) {
	count, err := t.rdb.SCard(ctx, viewKey(postID)).Result()
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return count, nil
	}

	var stored int64
	if err := db.DB.Model(&models.PostView{}).
		Where("post_id = ?", postID).Count(&stored).Error; err != nil {
		return 0, err
	}
	return stored, nil
}

// Forget drops the tracked views for a deleted post.
func (t *ViewTracker) Forget(ctx context.Context, postID uint) {
	t.rdb.Del(ctx, viewKey(postID))
	t.rdb.SRem(ctx, viewDirtyKey, postID)
}

// worker flushes dirty posts to Postgres on a ticker.
func (t *ViewTracker) worker() {
	ticker := time.NewTicker(viewSyncEvery)
	defer ticker.Stop()

	for range ticker.C {
		if err := t.syncDirty(context.Background()); err != nil {
			log.Printf("view sync failed: %v", err)
		}
	}
}

func (t *ViewTracker) syncDirty(ctx context.Context) error {
	postIDs, err := t.rdb.SMembers(ctx, viewDirtyKey).Result()
	if err != nil {
		return err
	}
	for _, idStr := range postIDs {
		var postID uint
		if _, err := fmt.Sscanf(idStr, "%d", &postID); err != nil {
			t.rdb.SRem(ctx, viewDirtyKey, idStr)
			continue
		}
		if err := t.syncPost(ctx, postID); err != nil {
			log.Printf("view sync for post %d failed: %v", postID, err)
			continue
		}
		t.rdb.SRem(ctx, viewDirtyKey, idStr)
	}
	return nil
}

func (t *ViewTracker) syncPost(ctx context.Context, postID uint) error {
	userIDs, err := t.rdb.SMembers(ctx, viewKey(postID)).Result()
	if err != nil {
		return err
	}

	for _, uidStr := range userIDs {
		var userID uint
		if _, err := fmt.Sscanf(uidStr, "%d", &userID); err != nil {
			continue
		}
		view := models.PostView{PostID: postID, UserID: userID}
		if err := db.DB.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&view).Error; err != nil {
			return err
		}
	}

	return db.DB.Model(&models.Post{}).Where("id = ?", postID).
		UpdateColumn("views", len(userIDs)).Error
}
