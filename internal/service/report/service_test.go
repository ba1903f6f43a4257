package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuresmile/clinic-api/internal/model"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
)

type stubAppointmentRepo struct {
	apt     *model.Appointment
	history []*model.Appointment
}

func (s *stubAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error { return nil }
func (s *stubAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	if s.apt == nil {
		return nil, apperrors.NotFound("appointment", nil)
	}
	return s.apt, nil
}
func (s *stubAppointmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment", nil)
}
func (s *stubAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error { return nil }
func (s *stubAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }
func (s *stubAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.history, nil
}
func (s *stubAppointmentRepo) ListForDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	return nil, nil
}
func (s *stubAppointmentRepo) ExistsAt(ctx context.Context, date, timeOfDay string) (bool, error) {
	return false, nil
}

type stubPatientRepo struct {
	patient *model.Patient
}

func (s *stubPatientRepo) Create(ctx context.Context, p *model.Patient) error { return nil }
func (s *stubPatientRepo) Get(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	if s.patient == nil {
		return nil, apperrors.NotFound("patient", nil)
	}
	return s.patient, nil
}
func (s *stubPatientRepo) Update(ctx context.Context, p *model.Patient) error { return nil }
func (s *stubPatientRepo) Delete(ctx context.Context, id uuid.UUID) error     { return nil }
func (s *stubPatientRepo) List(ctx context.Context, search string, page model.Pagination) ([]*model.Patient, int, error) {
	return nil, 0, nil
}

func sampleAppointment() *model.Appointment {
	return &model.Appointment{
		BookingID:       "BK-20260310-0042",
		PatientName:     "Amina",
		ServiceName:     "Teeth Whitening",
		AppointmentDate: "2026-03-10",
		AppointmentTime: "09:00",
		Status:          model.AppointmentStatusConfirmed,
	}
}

func TestAppointmentReportRendersPDF(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{apt: sampleAppointment()}, &stubPatientRepo{})
	svc.now = func() time.Time { return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC) }

	pdf, err := svc.AppointmentReport(context.Background(), uuid.New())
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestAppointmentReportMissing(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{}, &stubPatientRepo{})

	_, err := svc.AppointmentReport(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}

func TestPatientReportIncludesHistory(t *testing.T) {
	patient := &model.Patient{FullName: "Amina", Phone: "+20100000000"}
	patient.ID = uuid.New()

	svc := NewService(
		&stubAppointmentRepo{history: []*model.Appointment{sampleAppointment()}},
		&stubPatientRepo{patient: patient},
	)

	pdf, err := svc.PatientReport(context.Background(), patient.ID)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestPatientReportMissing(t *testing.T) {
	svc := NewService(&stubAppointmentRepo{}, &stubPatientRepo{})

	_, err := svc.PatientReport(context.Background(), uuid.New())
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrNotFound, appErr.Code)
}
