package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"blog/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrSlugTaken — нарушен уникальный индекс (slug, день публикации).
var ErrSlugTaken = errors.New("slug already used for this publish date")

type PostRepo interface {
	// публичная часть — только опубликованные
	ListPublished(ctx context.Context, tagID *int64, limit, offset int) ([]*models.Post, error)
	CountPublished(ctx context.Context, tagID *int64) (int, error)
	GetPublishedByDate(ctx context.Context, slug string, day time.Time) (*models.Post, error)
	GetPublishedByID(ctx context.Context, id int64) (*models.Post, error)
	SimilarPublished(ctx context.Context, postID int64, limit int) ([]*models.PostWithCount, error)
	Search(ctx context.Context, query string, threshold float64) ([]*models.Post, error)
	LatestPublished(ctx context.Context, limit int) ([]*models.Post, error)
	AllPublished(ctx context.Context) ([]*models.Post, error)
	MostCommented(ctx context.Context, limit int) ([]*models.PostWithCount, error)

	// админка
	List(ctx context.Context, limit, offset int) ([]*models.Post, int, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	SlugTaken(ctx context.Context, slug string, publish time.Time, excludeID int64) (bool, error)
	Create(ctx context.Context, p *models.Post) (*models.Post, error)
	Update(ctx context.Context, p *models.Post) error
	UpdateStatus(ctx context.Context, id int64, status models.PostStatus) error
	Delete(ctx context.Context, id int64) error
}

type postRepo struct{ db DBTX }

func NewPostRepo(db DBTX) PostRepo { return &postRepo{db: db} }

const postColumns = `p.id, p.author_id, u.username, p.title, p.slug, p.body, p.publish, p.created, p.updated, p.status`

const postFrom = ` FROM posts p JOIN users u ON u.id = p.author_id`

const publishedOnly = `p.status = 'PB'`

func scanPost(row pgx.Row, extra ...any) (*models.Post, error) {
	var p models.Post
	var status string
	dest := []any{&p.ID, &p.AuthorID, &p.Author, &p.Title, &p.Slug, &p.Body, &p.Publish, &p.Created, &p.Updated, &status}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	p.Status = models.PostStatus(strings.TrimSpace(status))
	return &p, nil
}

func (r *postRepo) queryPosts(ctx context.Context, sql string, args ...any) ([]*models.Post, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (r *postRepo) queryPostsWithCount(ctx context.Context, sql string, args ...any) ([]*models.PostWithCount, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*models.PostWithCount
	var plain []*models.Post
	for rows.Next() {
		var cnt int
		p, err := scanPost(rows, &cnt)
		if err != nil {
			return nil, err
		}
		list = append(list, &models.PostWithCount{Post: *p, Count: cnt})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, pc := range list {
		plain = append(plain, &pc.Post)
	}
	if err := r.attachTags(ctx, plain); err != nil {
		return nil, err
	}
	return list, nil
}

// attachTags подгружает теги одним запросом для всех постов списка.
func (r *postRepo) attachTags(ctx context.Context, posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(posts))
	byID := make(map[int64]*models.Post, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		byID[p.ID] = p
		p.Tags = []models.Tag{}
	}

	rows, err := r.db.Query(ctx, `
		SELECT pt.post_id, t.id, t.name, t.slug
		FROM post_tags pt JOIN tags t ON t.id = pt.tag_id
		WHERE pt.post_id = ANY($1)
		ORDER BY t.name`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var postID int64
		var t models.Tag
		if err := rows.Scan(&postID, &t.ID, &t.Name, &t.Slug); err != nil {
			return err
		}
		if p, ok := byID[postID]; ok {
			p.Tags = append(p.Tags, t)
		}
	}
	return rows.Err()
}

func publishedWhere(tagID *int64) (string, []any) {
	where := []string{publishedOnly}
	args := []any{}
	if tagID != nil {
		args = append(args, *tagID)
		where = append(where, fmt.Sprintf(
			`EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = $%d)`, len(args)))
	}
	return " WHERE " + strings.Join(where, " AND "), args
}

func (r *postRepo) ListPublished(ctx context.Context, tagID *int64, limit, offset int) ([]*models.Post, error) {
	where, args := publishedWhere(tagID)
	i := len(args) + 1
	sql := "SELECT " + postColumns + postFrom + where +
		fmt.Sprintf(" ORDER BY p.publish DESC LIMIT $%d OFFSET $%d", i, i+1)
	args = append(args, limit, offset)
	return r.queryPosts(ctx, sql, args...)
}

func (r *postRepo) CountPublished(ctx context.Context, tagID *int64) (int, error) {
	where, args := publishedWhere(tagID)
	var n int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM posts p"+where, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// GetPublishedByDate ищет пост по слагу в пределах суток day (UTC).
func (r *postRepo) GetPublishedByDate(ctx context.Context, slug string, day time.Time) (*models.Post, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	sql := "SELECT " + postColumns + postFrom +
		" WHERE " + publishedOnly + " AND p.slug = $1 AND p.publish >= $2 AND p.publish < $3"

	p, err := scanPost(r.db.QueryRow(ctx, sql, slug, start, start.AddDate(0, 0, 1)))
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.attachTags(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepo) GetPublishedByID(ctx context.Context, id int64) (*models.Post, error) {
	sql := "SELECT " + postColumns + postFrom + " WHERE " + publishedOnly + " AND p.id = $1"
	p, err := scanPost(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.attachTags(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

// SimilarPublished — опубликованные посты с общими тегами, кроме самого поста:
// сначала по числу общих тегов, затем по свежести.
func (r *postRepo) SimilarPublished(ctx context.Context, postID int64, limit int) ([]*models.PostWithCount, error) {
	sql := "SELECT " + postColumns + `, COUNT(pt.tag_id) AS same_tags` + postFrom + `
		JOIN post_tags pt ON pt.post_id = p.id
		WHERE ` + publishedOnly + `
		  AND p.id <> $1
		  AND pt.tag_id IN (SELECT tag_id FROM post_tags WHERE post_id = $1)
		GROUP BY p.id, u.username
		ORDER BY same_tags DESC, p.publish DESC
		LIMIT $2`
	return r.queryPostsWithCount(ctx, sql, postID, limit)
}

// Search ранжирует по триграммной близости заголовка; при равенстве —
// по взвешенному полнотекстовому вектору (заголовок A, тело B).
func (r *postRepo) Search(ctx context.Context, query string, threshold float64) ([]*models.Post, error) {
	sql := "SELECT " + postColumns + postFrom + `
		WHERE ` + publishedOnly + ` AND similarity(p.title, $1) > $2
		ORDER BY similarity(p.title, $1) DESC,
		         ts_rank(setweight(to_tsvector(p.title), 'A') || setweight(to_tsvector(p.body), 'B'),
		                 plainto_tsquery($1)) DESC,
		         p.publish DESC`
	return r.queryPosts(ctx, sql, query, threshold)
}

func (r *postRepo) LatestPublished(ctx context.Context, limit int) ([]*models.Post, error) {
	sql := "SELECT " + postColumns + postFrom + " WHERE " + publishedOnly + " ORDER BY p.publish DESC LIMIT $1"
	return r.queryPosts(ctx, sql, limit)
}

func (r *postRepo) AllPublished(ctx context.Context) ([]*models.Post, error) {
	sql := "SELECT " + postColumns + postFrom + " WHERE " + publishedOnly + " ORDER BY p.publish DESC"
	return r.queryPosts(ctx, sql)
}

// MostCommented считает все комментарии поста, включая скрытые модерацией.
func (r *postRepo) MostCommented(ctx context.Context, limit int) ([]*models.PostWithCount, error) {
	sql := "SELECT " + postColumns + `, COUNT(c.id) AS total_comments` + postFrom + `
		LEFT JOIN comments c ON c.post_id = p.id
		WHERE ` + publishedOnly + `
		GROUP BY p.id, u.username
		ORDER BY total_comments DESC, p.publish DESC
		LIMIT $1`
	return r.queryPostsWithCount(ctx, sql, limit)
}

func (r *postRepo) List(ctx context.Context, limit, offset int) ([]*models.Post, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	sql := "SELECT " + postColumns + postFrom + " ORDER BY p.publish DESC LIMIT $1 OFFSET $2"
	list, err := r.queryPosts(ctx, sql, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *postRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, err := scanPost(r.db.QueryRow(ctx, "SELECT "+postColumns+postFrom+" WHERE p.id = $1", id))
	if err != nil {
		return nil, notFound(err)
	}
	if err := r.attachTags(ctx, []*models.Post{p}); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *postRepo) SlugTaken(ctx context.Context, slug string, publish time.Time, excludeID int64) (bool, error) {
	const q = `
		SELECT EXISTS(
			SELECT 1 FROM posts
			WHERE slug = $1
			  AND (publish AT TIME ZONE 'UTC')::date = ($2::timestamptz AT TIME ZONE 'UTC')::date
			  AND id <> $3
		)`
	var taken bool
	if err := r.db.QueryRow(ctx, q, slug, publish, excludeID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *postRepo) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		INSERT INTO posts (author_id, title, slug, body, publish, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created, updated`

	out := *p
	if err := tx.QueryRow(ctx, q, p.AuthorID, p.Title, p.Slug, p.Body, p.Publish, string(p.Status)).
		Scan(&out.ID, &out.Created, &out.Updated); err != nil {
		return nil, uniqueViolation(err)
	}

	tags, err := setPostTags(ctx, tx, out.ID, p.Tags)
	if err != nil {
		return nil, err
	}
	out.Tags = tags

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *postRepo) Update(ctx context.Context, p *models.Post) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const q = `
		UPDATE posts
		SET title = $1, slug = $2, body = $3, publish = $4, status = $5, updated = NOW()
		WHERE id = $6`
	tag, err := tx.Exec(ctx, q, p.Title, p.Slug, p.Body, p.Publish, string(p.Status), p.ID)
	if err != nil {
		return uniqueViolation(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	tags, err := setPostTags(ctx, tx, p.ID, p.Tags)
	if err != nil {
		return err
	}
	p.Tags = tags

	return tx.Commit(ctx)
}

func (r *postRepo) UpdateStatus(ctx context.Context, id int64, status models.PostStatus) error {
	tag, err := r.db.Exec(ctx, `UPDATE posts SET status = $2, updated = NOW() WHERE id = $1`, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete удаляет пост; комментарии и связи с тегами уходят каскадом.
func (r *postRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// setPostTags заменяет набор тегов поста, создавая недостающие теги.
func setPostTags(ctx context.Context, tx pgx.Tx, postID int64, tags []models.Tag) ([]models.Tag, error) {
	if _, err := tx.Exec(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return nil, err
	}

	out := make([]models.Tag, 0, len(tags))
	for _, t := range tags {
		const upsert = `
			INSERT INTO tags (name, slug) VALUES ($1, $2)
			ON CONFLICT (slug) DO UPDATE SET slug = EXCLUDED.slug
			RETURNING id, name, slug`
		var saved models.Tag
		if err := tx.QueryRow(ctx, upsert, t.Name, t.Slug).Scan(&saved.ID, &saved.Name, &saved.Slug); err != nil {
			return nil, err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			postID, saved.ID); err != nil {
			return nil, err
		}
		out = append(out, saved)
	}
	return out, nil
}

func uniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrSlugTaken
	}
	return err
}
