package models

import (
	"fmt"
	"time"
)

type PostStatus string

const (
	StatusDraft     PostStatus = "DF"
	StatusPublished PostStatus = "PB"
)

func (s PostStatus) Valid() bool { return s == StatusDraft || s == StatusPublished }

func (s PostStatus) Label() string {
	if s == StatusPublished {
		return "Published"
	}
	return "Draft"
}

type Post struct {
	ID       int64      `json:"id"`
	AuthorID int64      `json:"authorId"`
	Author   string     `json:"author,omitempty"`
	Title    string     `json:"title"`
	Slug     string     `json:"slug"`
	Body     string     `json:"body"`
	Publish  time.Time  `json:"publish"`
	Created  time.Time  `json:"created"`
	Updated  time.Time  `json:"updated"`
	Status   PostStatus `json:"status"`
	Tags     []Tag      `json:"tags"`
}

// AbsoluteURL — канонический путь поста: /год/месяц/день/слаг/.
func (p *Post) AbsoluteURL() string {
	d := p.Publish.UTC()
	return fmt.Sprintf("/%d/%d/%d/%s/", d.Year(), int(d.Month()), d.Day(), p.Slug)
}

func (p *Post) IsPublished() bool { return p.Status == StatusPublished }

// PostWithCount — пост с агрегатом (общие теги, число комментариев).
type PostWithCount struct {
	Post
	Count int `json:"count"`
}

// swagger:model PostRequest
type PostRequest struct {
	Title   string     `json:"title"   validate:"required,max=255"   example:"Заметки о pgx"`
	Slug    string     `json:"slug"    validate:"omitempty,max=255"  example:"zametki-o-pgx"`
	Body    string     `json:"body"    validate:"required,max=2500"  example:"**Markdown** текст"`
	Status  PostStatus `json:"status"  validate:"omitempty,oneof=DF PB" example:"PB"`
	Publish *time.Time `json:"publish,omitempty"`
	Tags    []string   `json:"tags"    example:"go,postgres"`
}

type StatusRequest struct {
	Status PostStatus `json:"status" validate:"required,oneof=DF PB" example:"PB"`
}
