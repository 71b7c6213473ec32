package services

import (
	"context"
	"testing"
	"time"

	"blog/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

func seedPosts() *memPosts {
	return newMemPosts(
		post(1, "First", "first", models.StatusPublished, day0, tagGo),
		post(2, "Second", "second", models.StatusPublished, day0.AddDate(0, 0, 1), tagGo, tagSQL),
		post(3, "Third", "third", models.StatusPublished, day0.AddDate(0, 0, 2), tagSQL),
		post(4, "Draft", "draft", models.StatusDraft, day0.AddDate(0, 0, 3), tagGo),
		post(5, "Fifth", "fifth", models.StatusPublished, day0.AddDate(0, 0, 4), tagGo),
	)
}

func newPostSvc(posts *memPosts) (PostService, *memComments) {
	comments := newMemComments(posts)
	return NewPostService(posts, comments, &memTags{tags: []models.Tag{tagGo, tagSQL}}), comments
}

func TestListPublished_FirstPageNewestFirst(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	page, err := svc.ListPublished(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Number)
	assert.Equal(t, 2, page.Page.NumPages)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, "fifth", page.Posts[0].Slug)
	assert.Equal(t, "third", page.Posts[1].Slug)
	assert.Nil(t, page.Tag)
}

func TestListPublished_PageClamping(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())
	ctx := context.Background()

	cases := map[string]int{"abc": 1, "": 1, "2": 2, "99": 2, "0": 2, "-1": 2}
	for raw, want := range cases {
		page, err := svc.ListPublished(ctx, "", raw)
		require.NoError(t, err)
		assert.Equal(t, want, page.Page.Number, "page=%q", raw)
	}
}

func TestListPublished_NeverReturnsDrafts(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	for _, raw := range []string{"1", "2"} {
		page, err := svc.ListPublished(context.Background(), "go", raw)
		require.NoError(t, err)
		for _, p := range page.Posts {
			assert.Equal(t, models.StatusPublished, p.Status)
		}
	}
}

func TestListPublished_ByTag(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	page, err := svc.ListPublished(context.Background(), "sql", "1")
	require.NoError(t, err)
	require.NotNil(t, page.Tag)
	assert.Equal(t, "sql", page.Tag.Slug)
	assert.Equal(t, 2, page.Page.Count)
}

func TestListPublished_UnknownTag(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	_, err := svc.ListPublished(context.Background(), "rust", "1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPublished_EmptyBlog(t *testing.T) {
	svc, _ := newPostSvc(newMemPosts())

	page, err := svc.ListPublished(context.Background(), "", "5")
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page.Number)
	assert.Empty(t, page.Posts)
}

func TestGetPublishedByDate(t *testing.T) {
	posts := seedPosts()
	svc, comments := newPostSvc(posts)
	ctx := context.Background()
	_, _ = comments.Create(ctx, &models.Comment{PostID: 2, Name: "a", Email: "a@x.io", Body: "visible", Active: true})
	_, _ = comments.Create(ctx, &models.Comment{PostID: 2, Name: "b", Email: "b@x.io", Body: "hidden", Active: false})

	d, err := svc.GetPublishedByDate(ctx, 2024, 1, 11, "second")
	require.NoError(t, err)
	assert.Equal(t, int64(2), d.Post.ID)
	require.Len(t, d.Comments, 1)
	assert.Equal(t, "visible", d.Comments[0].Body)

	// похожие: общий тег, сам пост и черновик не попадают
	ids := []int64{}
	for _, s := range d.Similar {
		ids = append(ids, s.ID)
	}
	assert.ElementsMatch(t, []int64{1, 3, 5}, ids)
}

func TestGetPublishedByDate_DraftIsNotFound(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	_, err := svc.GetPublishedByDate(context.Background(), 2024, 1, 13, "draft")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublishedByDate_InvalidDate(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	_, err := svc.GetPublishedByDate(context.Background(), 2024, 2, 31, "first")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPublishedByDate_WrongDay(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	_, err := svc.GetPublishedByDate(context.Background(), 2024, 1, 12, "first")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearch_BlankQueryIsFormError(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	res, errs, err := svc.Search(context.Background(), models.SearchForm{Query: "   "})
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.True(t, errs.Has("query"))
}

func TestSearch_Results(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	res, errs, err := svc.Search(context.Background(), models.SearchForm{Query: " Third "})
	require.NoError(t, err)
	assert.Nil(t, errs)
	require.Len(t, res, 1)
	assert.Equal(t, int64(3), res[0].ID)
}

func TestSearch_DraftsExcluded(t *testing.T) {
	svc, _ := newPostSvc(seedPosts())

	res, _, err := svc.Search(context.Background(), models.SearchForm{Query: "Draft"})
	require.NoError(t, err)
	assert.Empty(t, res)
}
