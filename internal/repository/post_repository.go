package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"quillhub/internal/models"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, author_id, company_id, content, likes, created_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (author_id, company_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, likes, created_at
	`

	err := r.db.QueryRowxContext(ctx, query, post.AuthorID, post.CompanyID, post.Content).
		Scan(&post.PostID, &post.Likes, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating post: %w", err)
	}

	return nil
}

// ListFeed returns posts newest first with id as the tie-break.
func (r *postRepository) ListFeed(ctx context.Context, offset, limit int) ([]models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	posts := []models.Post{}
	if err := r.db.SelectContext(ctx, &posts, query, limit, offset); err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}

	return posts, nil
}
