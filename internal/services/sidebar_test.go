package services

import (
	"context"
	"testing"
	"time"

	"blog/internal/cache"
	"blog/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSidebar_NoCache(t *testing.T) {
	posts := seedPosts()
	posts.comments[3] = 4
	posts.comments[1] = 1
	svc := NewSidebarService(posts, &memTags{tags: []models.Tag{tagGo, tagSQL}}, nil)

	sb, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, sb.TotalPosts)
	require.Len(t, sb.LatestPosts, 4)
	assert.Equal(t, "fifth", sb.LatestPosts[0].Slug)
	assert.Equal(t, int64(3), sb.MostCommented[0].ID)
	assert.Equal(t, 4, sb.MostCommented[0].Count)
	assert.Equal(t, []models.Tag{tagGo, tagSQL}, sb.Tags)

	// Invalidate на nil-кэше ничего не ломает
	svc.Invalidate(context.Background())
}

func TestSidebar_CachedUntilInvalidated(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := cache.NewRedisCache(context.Background(), mr.Addr(), time.Minute)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	posts := seedPosts()
	svc := NewSidebarService(posts, &memTags{}, c)
	ctx := context.Background()

	first, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, posts.calls["CountPublished"])
	assert.True(t, mr.Exists("blog:sidebar"))

	posts.posts = append(posts.posts, post(6, "Sixth", "sixth", models.StatusPublished, day0.AddDate(0, 0, 9)))
	second, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, first.TotalPosts, second.TotalPosts)
	assert.Equal(t, 1, posts.calls["CountPublished"])

	svc.Invalidate(ctx)
	third, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, third.TotalPosts)
	assert.Equal(t, "sixth", third.LatestPosts[0].Slug)
}

func TestSidebar_TagListError(t *testing.T) {
	svc := NewSidebarService(seedPosts(), failingTags{}, nil)

	_, err := svc.Get(context.Background())
	assert.ErrorIs(t, err, errTagsDown)
}
