package repository

import (
	"context"

	"blog/internal/models"
)

type TagRepo struct {
	db DBTX
}

func NewTagRepo(db DBTX) *TagRepo { return &TagRepo{db: db} }

func (r *TagRepo) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var t models.Tag
	err := r.db.QueryRow(ctx, `SELECT id, name, slug FROM tags WHERE slug = $1`, slug).Scan(&t.ID, &t.Name, &t.Slug)
	if err != nil {
		return nil, notFound(err)
	}
	return &t, nil
}

// List — все теги, у которых есть хотя бы один опубликованный пост.
func (r *TagRepo) List(ctx context.Context) ([]models.Tag, error) {
	rows, err := r.db.Query(ctx, `
		SELECT DISTINCT t.id, t.name, t.slug
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		JOIN posts p ON p.id = pt.post_id
		WHERE `+publishedOnly+`
		ORDER BY t.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
