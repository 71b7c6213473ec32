package services

import (
	"context"
	"errors"
	"sort"
	"time"

	"blog/internal/models"
	"blog/internal/repository"
)

// memPosts — in-memory PostRepo для тестов сервисов.
type memPosts struct {
	posts    []*models.Post
	comments map[int64]int
	nextID   int64
	calls    map[string]int
}

func newMemPosts(posts ...*models.Post) *memPosts {
	m := &memPosts{comments: map[int64]int{}, calls: map[string]int{}, nextID: 100}
	m.posts = append(m.posts, posts...)
	return m
}

func (m *memPosts) published(tagID *int64) []*models.Post {
	var out []*models.Post
	for _, p := range m.posts {
		if !p.IsPublished() {
			continue
		}
		if tagID != nil && !hasTag(p, *tagID) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Publish.After(out[j].Publish) })
	return out
}

func hasTag(p *models.Post, id int64) bool {
	for _, t := range p.Tags {
		if t.ID == id {
			return true
		}
	}
	return false
}

func window(list []*models.Post, limit, offset int) []*models.Post {
	if offset >= len(list) {
		return nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end]
}

func (m *memPosts) ListPublished(_ context.Context, tagID *int64, limit, offset int) ([]*models.Post, error) {
	m.calls["ListPublished"]++
	return window(m.published(tagID), limit, offset), nil
}

func (m *memPosts) CountPublished(_ context.Context, tagID *int64) (int, error) {
	m.calls["CountPublished"]++
	return len(m.published(tagID)), nil
}

func (m *memPosts) GetPublishedByDate(_ context.Context, slug string, day time.Time) (*models.Post, error) {
	for _, p := range m.published(nil) {
		d := p.Publish.UTC()
		if p.Slug == slug && d.Year() == day.Year() && d.YearDay() == day.YearDay() {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) GetPublishedByID(_ context.Context, id int64) (*models.Post, error) {
	for _, p := range m.published(nil) {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) SimilarPublished(_ context.Context, postID int64, limit int) ([]*models.PostWithCount, error) {
	var src *models.Post
	for _, p := range m.posts {
		if p.ID == postID {
			src = p
		}
	}
	if src == nil {
		return nil, nil
	}
	var out []*models.PostWithCount
	for _, p := range m.published(nil) {
		if p.ID == postID {
			continue
		}
		n := 0
		for _, t := range src.Tags {
			if hasTag(p, t.ID) {
				n++
			}
		}
		if n > 0 {
			out = append(out, &models.PostWithCount{Post: *p, Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPosts) Search(_ context.Context, query string, _ float64) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range m.published(nil) {
		if p.Title == query {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memPosts) LatestPublished(_ context.Context, limit int) ([]*models.Post, error) {
	m.calls["LatestPublished"]++
	return window(m.published(nil), limit, 0), nil
}

func (m *memPosts) AllPublished(_ context.Context) ([]*models.Post, error) {
	return m.published(nil), nil
}

func (m *memPosts) MostCommented(_ context.Context, limit int) ([]*models.PostWithCount, error) {
	var out []*models.PostWithCount
	for _, p := range m.published(nil) {
		out = append(out, &models.PostWithCount{Post: *p, Count: m.comments[p.ID]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memPosts) List(_ context.Context, limit, offset int) ([]*models.Post, int, error) {
	return window(m.posts, limit, offset), len(m.posts), nil
}

func (m *memPosts) GetByID(_ context.Context, id int64) (*models.Post, error) {
	for _, p := range m.posts {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memPosts) SlugTaken(_ context.Context, slug string, publish time.Time, excludeID int64) (bool, error) {
	for _, p := range m.posts {
		if p.ID != excludeID && p.Slug == slug && sameDay(p.Publish, publish) {
			return true, nil
		}
	}
	return false, nil
}

func sameDay(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func (m *memPosts) Create(_ context.Context, p *models.Post) (*models.Post, error) {
	m.nextID++
	cp := *p
	cp.ID = m.nextID
	m.posts = append(m.posts, &cp)
	return &cp, nil
}

func (m *memPosts) Update(_ context.Context, p *models.Post) error {
	for i, cur := range m.posts {
		if cur.ID == p.ID {
			cp := *p
			m.posts[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPosts) UpdateStatus(_ context.Context, id int64, status models.PostStatus) error {
	for _, p := range m.posts {
		if p.ID == id {
			p.Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *memPosts) Delete(_ context.Context, id int64) error {
	for i, p := range m.posts {
		if p.ID == id {
			m.posts = append(m.posts[:i], m.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type memComments struct {
	byPost map[int64][]*models.Comment
	posts  *memPosts
	nextID int64
}

func newMemComments(posts *memPosts) *memComments {
	return &memComments{byPost: map[int64][]*models.Comment{}, posts: posts}
}

func (m *memComments) Create(_ context.Context, c *models.Comment) (*models.Comment, error) {
	m.nextID++
	cp := *c
	cp.ID = m.nextID
	m.byPost[c.PostID] = append(m.byPost[c.PostID], &cp)
	if m.posts != nil {
		m.posts.comments[c.PostID]++
	}
	return &cp, nil
}

func (m *memComments) ListActive(_ context.Context, postID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range m.byPost[postID] {
		if c.Active {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) ListAll(_ context.Context, postID int64) ([]*models.Comment, error) {
	return m.byPost[postID], nil
}

func (m *memComments) SetActive(_ context.Context, id int64, active bool) error {
	for _, list := range m.byPost {
		for _, c := range list {
			if c.ID == id {
				c.Active = active
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

func (m *memComments) Delete(_ context.Context, id int64) error {
	for pid, list := range m.byPost {
		for i, c := range list {
			if c.ID == id {
				m.byPost[pid] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return repository.ErrNotFound
}

type memTags struct{ tags []models.Tag }

func (m *memTags) GetBySlug(_ context.Context, slug string) (*models.Tag, error) {
	for _, t := range m.tags {
		if t.Slug == slug {
			cp := t
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memTags) List(_ context.Context) ([]models.Tag, error) { return m.tags, nil }

var errTagsDown = errors.New("tags down")

type failingTags struct{}

func (failingTags) GetBySlug(context.Context, string) (*models.Tag, error) { return nil, errTagsDown }
func (failingTags) List(context.Context) ([]models.Tag, error) { return nil, errTagsDown }

type countingInvalidator struct{ n int }

func (c *countingInvalidator) Invalidate(context.Context) { c.n++ }

type fakeMailer struct {
	to      []string
	replyTo string
	subject string
	body    string
	err     error
	calls   int
}

func (f *fakeMailer) Send(to []string, replyTo, subject, body string) error {
	f.calls++
	f.to, f.replyTo, f.subject, f.body = to, replyTo, subject, body
	return f.err
}

var (
	tagGo  = models.Tag{ID: 1, Name: "go", Slug: "go"}
	tagSQL = models.Tag{ID: 2, Name: "sql", Slug: "sql"}
)

func post(id int64, title, slug string, status models.PostStatus, publish time.Time, tags ...models.Tag) *models.Post {
	return &models.Post{
		ID: id, AuthorID: 1, Author: "admin", Title: title, Slug: slug, Body: "Body of **" + title + "**",
		Publish: publish, Created: publish, Updated: publish, Status: status, Tags: tags,
	}
}
