package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
)

const blogPostColumns = `
	id, title, excerpt, content, image_url, category, author, read_time,
	is_published, created_at, updated_at`

func (r *blogPostRepository) Create(ctx context.Context, post *model.BlogPost) error {
	query := `
		INSERT INTO blog_posts (
			id, title, excerpt, content, image_url, category, author,
			read_time, is_published, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	post.ID = uuid.New()
	post.CreatedAt = time.Now()
	post.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		post.ID, post.Title, post.Excerpt, post.Content, post.ImageURL,
		post.Category, post.Author, post.ReadTime, post.IsPublished,
		post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create blog post: %w", err)
	}
	return nil
}

func (r *blogPostRepository) Get(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE id = $1`

	var post model.BlogPost
	if err := r.db.GetContext(ctx, &post, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("blog post", err)
		}
		return nil, fmt.Errorf("failed to get blog post: %w", err)
	}
	return &post, nil
}

func (r *blogPostRepository) Update(ctx context.Context, post *model.BlogPost) error {
	query := `
		UPDATE blog_posts
		SET title = $1, excerpt = $2, content = $3, image_url = $4,
			category = $5, author = $6, read_time = $7, is_published = $8,
			updated_at = $9
		WHERE id = $10
	`
	post.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		post.Title, post.Excerpt, post.Content, post.ImageURL,
		post.Category, post.Author, post.ReadTime, post.IsPublished,
		post.UpdatedAt, post.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update blog post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("blog post", nil)
	}
	return nil
}

func (r *blogPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("blog post", nil)
	}
	return nil
}

func (r *blogPostRepository) List(ctx context.Context, filters *model.BlogPostFilters) ([]*model.BlogPost, error) {
	query := `SELECT ` + blogPostColumns + ` FROM blog_posts WHERE 1=1`
	args := []interface{}{}
	n := 0

	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filters != nil {
		if filters.PublishedOnly {
			query += " AND is_published"
		}
		if filters.Category != "" {
			query += " AND category = " + next()
			args = append(args, filters.Category)
		}
		if filters.Search != "" {
			p := next()
			query += " AND (title ILIKE " + p + " OR excerpt ILIKE " + p + " OR content ILIKE " + p + ")"
			args = append(args, "%"+filters.Search+"%")
		}
	}

	query += " ORDER BY created_at DESC"

	var posts []*model.BlogPost
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list blog posts: %w", err)
	}
	return posts, nil
}
