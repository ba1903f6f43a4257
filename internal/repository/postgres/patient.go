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

func (r *patientRepository) Create(ctx context.Context, p *model.Patient) error {
	query := `
		INSERT INTO patients (
			id, full_name, phone, email, date_of_birth, address,
			medical_history, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		p.ID, p.FullName, p.Phone, p.Email, p.DateOfBirth, p.Address,
		p.MedicalHistory, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	query := `
		SELECT id, full_name, phone, email,
			   to_char(date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
			   address, medical_history, created_at, updated_at
		FROM patients WHERE id = $1
	`
	var p model.Patient
	if err := r.db.GetContext(ctx, &p, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient", err)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &p, nil
}

func (r *patientRepository) Update(ctx context.Context, p *model.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, phone = $2, email = $3, date_of_birth = $4,
			address = $5, medical_history = $6, updated_at = $7
		WHERE id = $8
	`
	p.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		p.FullName, p.Phone, p.Email, p.DateOfBirth,
		p.Address, p.MedicalHistory, p.UpdatedAt, p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient", nil)
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, search string, page model.Pagination) ([]*model.Patient, int, error) {
	page.Normalize()

	where := ""
	args := []interface{}{}
	if search != "" {
		where = " WHERE full_name ILIKE $1 OR phone LIKE $1"
		args = append(args, "%"+search+"%")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT count(*) FROM patients"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to count patients: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, full_name, phone, email,
			   to_char(date_of_birth, 'YYYY-MM-DD') AS date_of_birth,
			   address, medical_history, created_at, updated_at
		FROM patients%s
		ORDER BY created_at DESC
		LIMIT %d OFFSET %d
	`, where, page.PageSize, (page.Page-1)*page.PageSize)

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, 0, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, total, nil
}
