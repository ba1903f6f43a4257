package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
)

const appointmentColumns = `
	a.id, a.booking_id, a.patient_id, a.service_id,
	p.full_name AS patient_name, s.name AS service_name,
	to_char(a.appointment_date, 'YYYY-MM-DD') AS appointment_date,
	to_char(a.appointment_time, 'HH24:MI') AS appointment_time,
	a.status, a.notes, a.cancel_reason, a.created_at, a.updated_at`

const appointmentJoins = `
	FROM appointments a
	JOIN patients p ON p.id = a.patient_id
	JOIN services s ON s.id = a.service_id`

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			id, booking_id, patient_id, service_id,
			appointment_date, appointment_time, status, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	apt.ID = uuid.New()
	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		apt.ID,
		apt.BookingID,
		apt.PatientID,
		apt.ServiceID,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Status,
		apt.Notes,
		apt.CreatedAt,
		apt.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" && strings.Contains(pqErr.Constraint, "booking_id") {
			return repository.ErrDuplicateBookingID
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE a.id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE a.booking_id = $1`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, bookingID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment", err)
		}
		return nil, fmt.Errorf("failed to get appointment by booking id: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET appointment_date = $1, appointment_time = $2, status = $3,
			notes = $4, cancel_reason = $5, updated_at = $6
		WHERE id = $7
	`
	apt.UpdatedAt = time.Now()

	result, err := r.db.ExecContext(ctx, query,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Status,
		apt.Notes,
		apt.CancelReason,
		apt.UpdatedAt,
		apt.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment", nil)
	}
	return nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + ` WHERE 1=1`
	args := []interface{}{}
	n := 0

	next := func() string {
		n++
		return fmt.Sprintf("$%d", n)
	}

	if filters != nil {
		if filters.PatientID != uuid.Nil {
			query += " AND a.patient_id = " + next()
			args = append(args, filters.PatientID)
		}
		if filters.ServiceID != uuid.Nil {
			query += " AND a.service_id = " + next()
			args = append(args, filters.ServiceID)
		}
		if filters.Status != "" {
			query += " AND a.status = " + next()
			args = append(args, filters.Status)
		}
		if filters.StartDate != "" {
			query += " AND a.appointment_date >= " + next()
			args = append(args, filters.StartDate)
		}
		if filters.EndDate != "" {
			query += " AND a.appointment_date <= " + next()
			args = append(args, filters.EndDate)
		}
	}

	query += " ORDER BY a.appointment_date, a.appointment_time, a.booking_id"

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ListForDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	query := `SELECT ` + appointmentColumns + appointmentJoins + `
		WHERE a.appointment_date = $1
		ORDER BY a.appointment_time, a.booking_id`

	var appointments []*model.Appointment
	if err := r.db.SelectContext(ctx, &appointments, query, date); err != nil {
		return nil, fmt.Errorf("failed to list appointments for date: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) ExistsAt(ctx context.Context, date, timeOfDay string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments
			WHERE appointment_date = $1 AND appointment_time = $2 AND status <> 'cancelled'
		)
	`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, date, timeOfDay); err != nil {
		return false, fmt.Errorf("failed to check slot: %w", err)
	}
	return exists, nil
}
