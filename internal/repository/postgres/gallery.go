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

const galleryColumns = `
	id, title, description, treatment_type, before_image_url, after_image_url,
	patient_age, treatment_duration, is_featured, is_active, display_order,
	created_at, updated_at`

func (r *galleryRepository) Create(ctx context.Context, item *model.GalleryItem) error {
	query := `
		INSERT INTO gallery_items (
			id, title, description, treatment_type, before_image_url,
			after_image_url, patient_age, treatment_duration, is_featured,
			is_active, display_order, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	item.ID = uuid.New()
	item.CreatedAt = time.Now()
	item.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.Title, item.Description, item.TreatmentType,
		item.BeforeImageURL, item.AfterImageURL, item.PatientAge,
		item.TreatmentDuration, item.IsFeatured, item.IsActive,
		item.DisplayOrder, item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create gallery item: %w", err)
	}
	return nil
}

func (r *galleryRepository) Get(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE id = $1`

	var item model.GalleryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("gallery item", err)
		}
		return nil, fmt.Errorf("failed to get gallery item: %w", err)
	}
	return &item, nil
}

func (r *galleryRepository) Update(ctx context.Context, item *model.GalleryItem) error {
	query := `
		UPDATE gallery_items
		SET title = $1, description = $2, treatment_type = $3,
			before_image_url = $4, after_image_url = $5, patient_age = $6,
			treatment_duration = $7, is_featured = $8, is_active = $9,
			display_order = $10, updated_at = $11
		WHERE id = $12
	`
	item.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		item.Title, item.Description, item.TreatmentType,
		item.BeforeImageURL, item.AfterImageURL, item.PatientAge,
		item.TreatmentDuration, item.IsFeatured, item.IsActive,
		item.DisplayOrder, item.UpdatedAt, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update gallery item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("gallery item", nil)
	}
	return nil
}

func (r *galleryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM gallery_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete gallery item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("gallery item", nil)
	}
	return nil
}

func (r *galleryRepository) List(ctx context.Context, filters *model.GalleryFilters) ([]*model.GalleryItem, error) {
	query := `SELECT ` + galleryColumns + ` FROM gallery_items WHERE 1=1`
	args := []interface{}{}
	n := 0

	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filters != nil {
		if filters.ActiveOnly {
			query += " AND is_active"
		}
		if filters.FeaturedOnly {
			query += " AND is_featured"
		}
		if filters.TreatmentType != "" {
			query += " AND treatment_type = " + next()
			args = append(args, filters.TreatmentType)
		}
	}

	query += " ORDER BY display_order, created_at"

	var items []*model.GalleryItem
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list gallery items: %w", err)
	}
	return items, nil
}
