// Package domain holds the core quotebook types.
package domain

import "time"

// Quote is a note owned by a single user. UserID is fixed at creation and is
// the only key used to authorize deletion.
type Quote struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	UserID    int64     `json:"userId"`
	Tags      []Tag     `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
}

// OwnedBy reports whether userID owns q.
func (q *Quote) OwnedBy(userID int64) bool {
	return q.UserID == userID
}
