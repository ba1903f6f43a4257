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

func (r *testimonialRepository) Create(ctx context.Context, t *model.Testimonial) error {
	query := `
		INSERT INTO testimonials (
			id, patient_name, service_name, rating, comment, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	t.ID = uuid.New()
	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.PatientName, t.ServiceName, t.Rating, t.Comment, t.IsActive,
		t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create testimonial: %w", err)
	}
	return nil
}

func (r *testimonialRepository) Get(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	query := `
		SELECT id, patient_name, service_name, rating, comment, is_active,
			   created_at, updated_at
		FROM testimonials WHERE id = $1
	`
	var t model.Testimonial
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("testimonial", err)
		}
		return nil, fmt.Errorf("failed to get testimonial: %w", err)
	}
	return &t, nil
}

func (r *testimonialRepository) Update(ctx context.Context, t *model.Testimonial) error {
	query := `
		UPDATE testimonials
		SET rating = $1, comment = $2, is_active = $3, updated_at = $4
		WHERE id = $5
	`
	t.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query, t.Rating, t.Comment, t.IsActive, t.UpdatedAt, t.ID)
	if err != nil {
		return fmt.Errorf("failed to update testimonial: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("testimonial", nil)
	}
	return nil
}

func (r *testimonialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM testimonials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete testimonial: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("testimonial", nil)
	}
	return nil
}

func (r *testimonialRepository) List(ctx context.Context, activeOnly bool) ([]*model.Testimonial, error) {
	query := `
		SELECT id, patient_name, service_name, rating, comment, is_active,
			   created_at, updated_at
		FROM testimonials
	`
	if activeOnly {
		query += " WHERE is_active"
	}
	query += " ORDER BY created_at DESC"

	var testimonials []*model.Testimonial
	if err := r.db.SelectContext(ctx, &testimonials, query); err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	return testimonials, nil
}
