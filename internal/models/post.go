package models

import "time"

// Post is a short text message owned by the user that created it.
// Posts are immutable: there is no update or delete operation.
// The json keys match the public API contract (userid, createdat).
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:varchar(200);not null"`
	UserID    uint      `json:"userid" gorm:"index;not null"`
	CreatedAt time.Time `json:"createdat"`
}
