package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPost_AbsoluteURL(t *testing.T) {
	p := &Post{Slug: "hello-world", Publish: time.Date(2024, time.March, 7, 23, 30, 0, 0, time.UTC)}
	assert.Equal(t, "/2024/3/7/hello-world/", p.AbsoluteURL())
}

func TestPost_AbsoluteURL_UsesUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	p := &Post{Slug: "late", Publish: time.Date(2024, time.March, 8, 1, 0, 0, 0, loc)}
	assert.Equal(t, "/2024/3/7/late/", p.AbsoluteURL())
}

func TestPostStatus(t *testing.T) {
	assert.True(t, StatusDraft.Valid())
	assert.True(t, StatusPublished.Valid())
	assert.False(t, PostStatus("XX").Valid())
	assert.Equal(t, "Published", StatusPublished.Label())
	assert.Equal(t, "Draft", StatusDraft.Label())
}
