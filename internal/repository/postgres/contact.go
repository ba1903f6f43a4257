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

func (r *contactMessageRepository) Create(ctx context.Context, m *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (
			id, name, email, subject, message, is_read, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	m.ID = uuid.New()
	m.CreatedAt = time.Now()
	m.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.Name, m.Email, m.Subject, m.Message, m.IsRead,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact message: %w", err)
	}
	return nil
}

func (r *contactMessageRepository) Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at, updated_at
		FROM contact_messages WHERE id = $1
	`
	var m model.ContactMessage
	if err := r.db.GetContext(ctx, &m, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("contact message", err)
		}
		return nil, fmt.Errorf("failed to get contact message: %w", err)
	}
	return &m, nil
}

func (r *contactMessageRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE contact_messages SET is_read = true, updated_at = $1 WHERE id = $2`,
		time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to mark contact message read: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("contact message", nil)
	}
	return nil
}

func (r *contactMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("contact message", nil)
	}
	return nil
}

func (r *contactMessageRepository) List(ctx context.Context, unreadOnly bool) ([]*model.ContactMessage, error) {
	query := `
		SELECT id, name, email, subject, message, is_read, created_at, updated_at
		FROM contact_messages
	`
	if unreadOnly {
		query += " WHERE NOT is_read"
	}
	query += " ORDER BY created_at DESC"

	var messages []*model.ContactMessage
	if err := r.db.SelectContext(ctx, &messages, query); err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	return messages, nil
}
