package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
)

func (r *queueStatisticsRepository) Upsert(ctx context.Context, stat *model.QueueStatistic) error {
	query := `
		INSERT INTO queue_statistics (
			id, service_id, service_name, appointment_date,
			total_appointments, completed_count, average_wait_minutes,
			max_wait_minutes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (service_id, appointment_date) DO UPDATE SET
			total_appointments = EXCLUDED.total_appointments,
			completed_count = EXCLUDED.completed_count,
			average_wait_minutes = EXCLUDED.average_wait_minutes,
			max_wait_minutes = EXCLUDED.max_wait_minutes,
			updated_at = EXCLUDED.updated_at
	`
	now := time.Now()
	if stat.ID == uuid.Nil {
		stat.ID = uuid.New()
		stat.CreatedAt = now
	}
	stat.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, query,
		stat.ID, stat.ServiceID, stat.ServiceName, stat.AppointmentDate,
		stat.TotalAppointments, stat.CompletedCount, stat.AverageWaitMinutes,
		stat.MaxWaitMinutes, stat.CreatedAt, stat.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert queue statistics: %w", err)
	}
	return nil
}

func (r *queueStatisticsRepository) ListForDate(ctx context.Context, date string) ([]*model.QueueStatistic, error) {
	query := `
		SELECT id, service_id, service_name,
			   to_char(appointment_date, 'YYYY-MM-DD') AS appointment_date,
			   total_appointments, completed_count, average_wait_minutes,
			   max_wait_minutes, created_at, updated_at
		FROM queue_statistics
		WHERE appointment_date = $1
		ORDER BY service_name
	`
	var stats []*model.QueueStatistic
	if err := r.db.SelectContext(ctx, &stats, query, date); err != nil {
		return nil, fmt.Errorf("failed to list queue statistics: %w", err)
	}
	return stats, nil
}
