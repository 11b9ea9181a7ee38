package models

import "time"

// Comment is a reader comment. Replies are threaded by parent id when read.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	ParentID  string    `json:"-"`
	Author    string    `json:"author"`
	Email     string    `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Replies   []Comment `json:"replies,omitempty"`
}
