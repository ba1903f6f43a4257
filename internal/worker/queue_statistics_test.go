package worker

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/metrics"
)

var testMetrics = metrics.New("clinic", "workertest")

type fakeAppointmentRepo struct {
	appointments []*model.Appointment
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error { return nil }
func (f *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (f *fakeAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentRepo) ListForDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	return f.appointments, nil
}
func (f *fakeAppointmentRepo) ExistsAt(ctx context.Context, date, timeOfDay string) (bool, error) {
	return false, nil
}

type fakeServiceRepo struct{}

func (f *fakeServiceRepo) Create(ctx context.Context, svc *model.Service) error { return nil }
func (f *fakeServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return nil, nil
}
func (f *fakeServiceRepo) Update(ctx context.Context, svc *model.Service) error { return nil }
func (f *fakeServiceRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (f *fakeServiceRepo) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	return []*model.Service{{Name: "Teeth Cleaning", Duration: 30}}, nil
}

type fakeStatsRepo struct {
	upserts []*model.QueueStatistic
}

func (f *fakeStatsRepo) Upsert(ctx context.Context, stat *model.QueueStatistic) error {
	f.upserts = append(f.upserts, stat)
	return nil
}
func (f *fakeStatsRepo) ListForDate(ctx context.Context, date string) ([]*model.QueueStatistic, error) {
	return f.upserts, nil
}

func appointmentAt(serviceID uuid.UUID, bookingID, at string, status model.AppointmentStatus) *model.Appointment {
	return &model.Appointment{
		BookingID:       bookingID,
		ServiceID:       serviceID,
		ServiceName:     "Teeth Cleaning",
		AppointmentDate: "2026-03-10",
		AppointmentTime: at,
		Status:          status,
	}
}

func TestRunOnceAggregatesPerService(t *testing.T) {
	serviceID := uuid.New()
	repo := &fakeAppointmentRepo{appointments: []*model.Appointment{
		appointmentAt(serviceID, "BK-1", "09:00", model.AppointmentStatusCompleted),
		appointmentAt(serviceID, "BK-2", "09:30", model.AppointmentStatusCompleted),
		appointmentAt(serviceID, "BK-3", "10:00", model.AppointmentStatusConfirmed),
		appointmentAt(serviceID, "BK-4", "10:30", model.AppointmentStatusCancelled),
	}}
	stats := &fakeStatsRepo{}

	w := NewQueueStatisticsWorker(
		repo,
		&fakeServiceRepo{},
		stats,
		QueueStatisticsConfig{Interval: time.Minute},
		testMetrics,
		logger.New(&logger.Config{Level: logger.ErrorLevel}),
	)

	err := w.RunOnce(context.Background(), "2026-03-10")
	require.NoError(t, err)

	require.Len(t, stats.upserts, 1)
	stat := stats.upserts[0]
	assert.Equal(t, serviceID, stat.ServiceID)
	assert.Equal(t, "2026-03-10", stat.AppointmentDate)
	// Cancelled booking is not counted.
	assert.Equal(t, 3, stat.TotalAppointments)
	assert.Equal(t, 2, stat.CompletedCount)
	// Waits with the 30-minute catalog duration: 0 for BK-1, 30 for BK-2.
	assert.Equal(t, 15, stat.AverageWaitMinutes)
	assert.Equal(t, 30, stat.MaxWaitMinutes)
}

func TestRunOnceEmptyDay(t *testing.T) {
	stats := &fakeStatsRepo{}
	w := NewQueueStatisticsWorker(
		&fakeAppointmentRepo{},
		&fakeServiceRepo{},
		stats,
		QueueStatisticsConfig{},
		testMetrics,
		logger.New(&logger.Config{Level: logger.ErrorLevel}),
	)

	require.NoError(t, w.RunOnce(context.Background(), "2026-03-10"))
	assert.Empty(t, stats.upserts)
}
