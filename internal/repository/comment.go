package repository

import (
	"context"

	"blog/internal/models"
)

type CommentRepo interface {
	Create(ctx context.Context, c *models.Comment) (*models.Comment, error)
	ListActive(ctx context.Context, postID int64) ([]*models.Comment, error)
	ListAll(ctx context.Context, postID int64) ([]*models.Comment, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type commentRepo struct{ db DBTX }

func NewCommentRepo(db DBTX) CommentRepo { return &commentRepo{db: db} }

const commentColumns = `id, post_id, name, email, body, created, updated, active`

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	const q = `
		INSERT INTO comments (post_id, name, email, body, active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + commentColumns

	var out models.Comment
	err := r.db.QueryRow(ctx, q, c.PostID, c.Name, c.Email, c.Body, c.Active).Scan(
		&out.ID, &out.PostID, &out.Name, &out.Email, &out.Body, &out.Created, &out.Updated, &out.Active,
	)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *commentRepo) ListActive(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 AND active ORDER BY created`, postID)
}

func (r *commentRepo) ListAll(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return r.list(ctx, `SELECT `+commentColumns+` FROM comments WHERE post_id = $1 ORDER BY created`, postID)
}

func (r *commentRepo) list(ctx context.Context, sql string, args ...any) ([]*models.Comment, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Comment
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Name, &c.Email, &c.Body, &c.Created, &c.Updated, &c.Active); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (r *commentRepo) SetActive(ctx context.Context, id int64, active bool) error {
	tag, err := r.db.Exec(ctx, `UPDATE comments SET active = $2, updated = NOW() WHERE id = $1`, id, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
