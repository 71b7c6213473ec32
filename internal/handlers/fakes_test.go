package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"blog/internal/forms"
	"blog/internal/handlers"
	"blog/internal/models"
	"blog/internal/pagination"
	"blog/internal/routes"
	"blog/internal/services"
	"blog/internal/web"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

const jwtSecret = "handlers-secret"

var published = &models.Post{
	ID: 7, AuthorID: 1, Author: "admin", Title: "Go tips", Slug: "go-tips", Body: "Use **gofmt**.",
	Publish: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), Status: models.StatusPublished,
	Tags: []models.Tag{{ID: 1, Name: "go", Slug: "go"}},
}

type fakePosts struct {
	listErr   error
	lastTag   string
	lastPage  string
	searchArg string
}

func (f *fakePosts) ListPublished(_ context.Context, tagSlug, rawPage string) (*services.PostPage, error) {
	f.lastTag, f.lastPage = tagSlug, rawPage
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := &services.PostPage{Posts: []*models.Post{published}, Page: pagination.New(3, 2, rawPage)}
	if tagSlug != "" {
		out.Tag = &models.Tag{ID: 1, Name: tagSlug, Slug: tagSlug}
	}
	return out, nil
}

func (f *fakePosts) GetPublishedByDate(_ context.Context, y, m, d int, slug string) (*services.PostDetail, error) {
	if y == 2024 && m == 3 && d == 5 && slug == "go-tips" {
		return &services.PostDetail{
			Post:     published,
			Comments: []*models.Comment{{ID: 1, PostID: 7, Name: "Ann", Body: "Great\npost", Active: true}},
		}, nil
	}
	return nil, services.ErrNotFound
}

func (f *fakePosts) GetPublishedByID(_ context.Context, id int64) (*models.Post, error) {
	if id == published.ID {
		return published, nil
	}
	return nil, services.ErrNotFound
}

func (f *fakePosts) Search(_ context.Context, form models.SearchForm) ([]*models.Post, forms.Errors, error) {
	f.searchArg = form.Query
	if errs := forms.Validate(form); errs != nil {
		return nil, errs, nil
	}
	if form.Query == "go" {
		return []*models.Post{published}, nil, nil
	}
	return nil, nil, nil
}

type fakeComments struct {
	submitted []models.CommentForm
	active    map[int64]bool
}

func (f *fakeComments) Submit(_ context.Context, post *models.Post, form models.CommentForm) (*models.Comment, forms.Errors, error) {
	if errs := forms.Validate(form); errs != nil {
		return nil, errs, nil
	}
	f.submitted = append(f.submitted, form)
	return &models.Comment{ID: int64(len(f.submitted)), PostID: post.ID, Name: form.Name, Active: true}, nil, nil
}

func (f *fakeComments) ListForPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	return nil, nil
}

func (f *fakeComments) SetActive(_ context.Context, id int64, active bool) error {
	if id != 1 {
		return services.ErrNotFound
	}
	f.active[id] = active
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	if id != 1 {
		return services.ErrNotFound
	}
	return nil
}

type fakeShare struct {
	forms []models.EmailPostForm
	fail  bool
}

func (f *fakeShare) Share(_ context.Context, _ *models.Post, form models.EmailPostForm) (bool, forms.Errors) {
	if errs := forms.Validate(form); errs != nil {
		return false, errs
	}
	if f.fail {
		errs := forms.Errors{}
		errs.Add(forms.NonField, "The email could not be sent. Please try again later.")
		return false, errs
	}
	f.forms = append(f.forms, form)
	return true, nil
}

type fakeSidebar struct{ err error }

func (f fakeSidebar) Get(context.Context) (*services.Sidebar, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &services.Sidebar{TotalPosts: 3, LatestPosts: []*models.Post{published}}, nil
}

type fakeFeed struct{ err error }

func (f fakeFeed) RSS(context.Context) (string, error) {
	return `<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"></rss>`, f.err
}

func (f fakeFeed) Sitemap(context.Context) ([]byte, error) {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?><urlset></urlset>`), f.err
}

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context) error { return f.err }

type fakeAuth struct{}

func (fakeAuth) Login(_ context.Context, username, password string) (*models.TokenResponse, error) {
	if username == "admin" && password == "password1" {
		return &models.TokenResponse{AccessToken: "tok", ExpiresIn: 60}, nil
	}
	return nil, services.ErrInvalidCredentials
}

type fakeAdminPosts struct {
	created  []models.PostRequest
	authorID int64
}

func (f *fakeAdminPosts) List(context.Context, int, int) ([]*models.Post, int, error) {
	return []*models.Post{published}, 1, nil
}

func (f *fakeAdminPosts) Get(_ context.Context, id int64) (*models.Post, error) {
	if id == published.ID {
		return published, nil
	}
	return nil, services.ErrNotFound
}

func (f *fakeAdminPosts) Create(_ context.Context, authorID int64, req models.PostRequest) (*models.Post, error) {
	if req.Title == "taken" {
		return nil, services.ErrSlugTaken
	}
	if errs := forms.Validate(req); errs != nil {
		return nil, &services.ValidationError{Fields: errs}
	}
	f.created = append(f.created, req)
	f.authorID = authorID
	return &models.Post{ID: 100, AuthorID: authorID, Title: req.Title}, nil
}

func (f *fakeAdminPosts) Update(ctx context.Context, id int64, _ models.PostRequest) (*models.Post, error) {
	return f.Get(ctx, id)
}

func (f *fakeAdminPosts) SetStatus(ctx context.Context, id int64, _ models.PostStatus) (*models.Post, error) {
	return f.Get(ctx, id)
}

func (f *fakeAdminPosts) Delete(_ context.Context, id int64) error {
	if id != published.ID {
		return services.ErrNotFound
	}
	return errors.New("db down")
}

type env struct {
	router     *mux.Router
	posts      *fakePosts
	comments   *fakeComments
	share      *fakeShare
	adminPosts *fakeAdminPosts
}

type envOpts struct {
	sidebarErr error
	feedErr    error
	pingErr    error
	shareFail  bool
}

func newEnv(t *testing.T, opts envOpts) *env {
	t.Helper()
	view, err := web.NewRenderer()
	require.NoError(t, err)

	e := &env{
		router:     mux.NewRouter(),
		posts:      &fakePosts{},
		comments:   &fakeComments{active: map[int64]bool{}},
		share:      &fakeShare{fail: opts.shareFail},
		adminPosts: &fakeAdminPosts{},
	}
	sidebar := fakeSidebar{err: opts.sidebarErr}

	routes.InitRoutes(e.router, routes.Handlers{
		Blog:         handlers.NewBlogHandler(e.posts, sidebar, view),
		Comment:      handlers.NewCommentHandler(e.posts, e.comments, sidebar, view),
		Share:        handlers.NewShareHandler(e.posts, e.share, sidebar, view),
		Feed:         handlers.NewFeedHandler(fakeFeed{err: opts.feedErr}),
		Health:       handlers.NewHealthHandler(fakePinger{err: opts.pingErr}),
		Auth:         handlers.NewAuthHandler(fakeAuth{}),
		AdminPost:    handlers.NewAdminPostHandler(e.adminPosts),
		AdminComment: handlers.NewAdminCommentHandler(e.comments),
		View:         view,
	}, jwtSecret)
	return e
}

func (e *env) do(req *http.Request) *httpResult {
	rec := newRecorder()
	e.router.ServeHTTP(rec, req)
	return &httpResult{rec}
}
