package models

import "time"

// Follow is a directed edge: the follower's feed includes the followee's
// posts. The composite unique index keeps at most one edge per ordered
// pair; self-edges are rejected at the service layer.
type Follow struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	FollowerID uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_followee;not null"`
	FolloweeID uint      `json:"followee_id" gorm:"uniqueIndex:idx_follower_followee;not null"`
	CreatedAt  time.Time `json:"created_at"`
}
