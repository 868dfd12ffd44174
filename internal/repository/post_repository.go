package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/yourusername/blog-cms/internal/models"
)

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// GetPostsAndCount returns one page of posts together with the total
// number of posts across all pages. The count comes from its own query
// and is independent of how many rows the page itself holds.
func (r *PostRepository) GetPostsAndCount(ctx context.Context, page, pageSize int) ([]models.Post, int, error) {
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * pageSize

	var total int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count posts: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, content, category_id, pv, reply_count, created_at, updated_at
		 FROM posts
		 ORDER BY created_at DESC, id DESC
		 LIMIT $1 OFFSET $2`,
		pageSize, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := make([]models.Post, 0, pageSize)
	for rows.Next() {
		var post models.Post
		err := rows.Scan(
			&post.ID,
			&post.Title,
			&post.Content,
			&post.CategoryID,
			&post.PV,
			&post.ReplyCount,
			&post.CreatedAt,
			&post.UpdatedAt,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating post rows: %w", err)
	}

	return posts, total, nil
}

// GetPostByID retrieves a post by its ID. A nil post with a nil error
// means no post exists with that ID.
func (r *PostRepository) GetPostByID(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, content, category_id, pv, reply_count, created_at, updated_at
		 FROM posts WHERE id = $1`,
		id,
	).Scan(
		&post.ID,
		&post.Title,
		&post.Content,
		&post.CategoryID,
		&post.PV,
		&post.ReplyCount,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	return &post, nil
}

// CreatePost persists a new post with zeroed counters and
// store-assigned id and timestamps.
func (r *PostRepository) CreatePost(ctx context.Context, req *models.CreatePostRequest) (*models.Post, error) {
	now := time.Now()
	post := &models.Post{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO posts (title, content, category_id, pv, reply_count, created_at, updated_at)
		 VALUES ($1, $2, $3, 0, 0, $4, $5)
		 RETURNING id`,
		req.Title, req.Content, req.CategoryID, now, now,
	).Scan(&post.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}

	return post, nil
}

// UpdatePost updates title, content and category of the post matching
// req.ID and returns the number of rows affected. Callers treat exactly
// one affected row as success; zero means no post matched.
func (r *PostRepository) UpdatePost(ctx context.Context, req *models.UpdatePostRequest) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE posts SET title = $1, content = $2, category_id = $3, updated_at = $4 WHERE id = $5`,
		req.Title, req.Content, req.CategoryID, time.Now(), req.ID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update post: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}

// DeletePostByID deletes the post matching id. Deleting an id with no
// matching post is a no-op, not an error.
func (r *PostRepository) DeletePostByID(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}
	return nil
}
