package models

import "time"

type Comment struct {
	ID      int64     `json:"id"`
	PostID  int64     `json:"postId"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Body    string    `json:"body"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
	Active  bool      `json:"active"`
}

func (c *Comment) String() string {
	return "Comment by " + c.Name
}

type CommentActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}
