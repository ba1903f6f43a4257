package appointment

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/messaging"
	"github.com/futuresmile/clinic-api/pkg/metrics"
	"github.com/futuresmile/clinic-api/pkg/queue"
)

var testMetrics = metrics.New("clinic", "appointmenttest")

type memoryAppointmentRepo struct {
	byID  map[uuid.UUID]*model.Appointment
	taken map[string]bool

	// collideCreates makes the next N Creates fail as booking-ID
	// duplicates.
	collideCreates int
	createCalls    int
}

func newMemoryAppointmentRepo() *memoryAppointmentRepo {
	return &memoryAppointmentRepo{
		byID:  make(map[uuid.UUID]*model.Appointment),
		taken: make(map[string]bool),
	}
}

func (m *memoryAppointmentRepo) Create(ctx context.Context, apt *model.Appointment) error {
	m.createCalls++
	if m.collideCreates > 0 {
		m.collideCreates--
		return repository.ErrDuplicateBookingID
	}
	apt.ID = uuid.New()
	m.byID[apt.ID] = apt
	m.taken[apt.AppointmentDate+" "+apt.AppointmentTime] = true
	return nil
}

func (m *memoryAppointmentRepo) Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	if apt, ok := m.byID[id]; ok {
		return apt, nil
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (m *memoryAppointmentRepo) GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error) {
	for _, apt := range m.byID {
		if apt.BookingID == bookingID {
			return apt, nil
		}
	}
	return nil, apperrors.NotFound("appointment", nil)
}

func (m *memoryAppointmentRepo) Update(ctx context.Context, apt *model.Appointment) error {
	if _, ok := m.byID[apt.ID]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	m.byID[apt.ID] = apt
	return nil
}

func (m *memoryAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.byID[id]; !ok {
		return apperrors.NotFound("appointment", nil)
	}
	delete(m.byID, id)
	return nil
}

func (m *memoryAppointmentRepo) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	out := make([]*model.Appointment, 0, len(m.byID))
	for _, apt := range m.byID {
		out = append(out, apt)
	}
	return out, nil
}

func (m *memoryAppointmentRepo) ListForDate(ctx context.Context, date string) ([]*model.Appointment, error) {
	var out []*model.Appointment
	for _, apt := range m.byID {
		if apt.AppointmentDate == date {
			out = append(out, apt)
		}
	}
	return out, nil
}

func (m *memoryAppointmentRepo) ExistsAt(ctx context.Context, date, timeOfDay string) (bool, error) {
	return m.taken[date+" "+timeOfDay], nil
}

type stubServiceRepo struct {
	svc *model.Service
}

func (s *stubServiceRepo) Create(ctx context.Context, svc *model.Service) error { return nil }
func (s *stubServiceRepo) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	if s.svc == nil {
		return nil, apperrors.NotFound("service", nil)
	}
	return s.svc, nil
}
func (s *stubServiceRepo) Update(ctx context.Context, svc *model.Service) error { return nil }
func (s *stubServiceRepo) Delete(ctx context.Context, id uuid.UUID) error       { return nil }
func (s *stubServiceRepo) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	return nil, nil
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

type recordingBroker struct {
	published []string
}

func (b *recordingBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	b.published = append(b.published, channel)
	return nil
}

func (b *recordingBroker) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	return nil, nil
}

func (b *recordingBroker) Close() error { return nil }

func newTestService(t *testing.T) (*Service, *memoryAppointmentRepo, *recordingBroker) {
	t.Helper()
	repo := newMemoryAppointmentRepo()
	broker := &recordingBroker{}
	log := logger.New(&logger.Config{Level: logger.ErrorLevel})
	svc := NewService(
		repo,
		&stubServiceRepo{svc: &model.Service{Name: "Teeth Cleaning", Duration: queue.DefaultServiceDuration, IsActive: true}},
		&stubPatientRepo{patient: &model.Patient{FullName: "Ada Lovelace"}},
		nil,
		broker,
		testMetrics,
		log,
	)
	svc.now = func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	}
	return svc, repo, broker
}

func createRequest() *model.CreateAppointmentRequest {
	return &model.CreateAppointmentRequest{
		PatientID:       uuid.New(),
		ServiceID:       uuid.New(),
		AppointmentDate: "2026-03-10",
		AppointmentTime: "09:30",
	}
}

func TestCreateAppointment(t *testing.T) {
	svc, _, broker := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^BK-20260310-\d{4}$`), apt.BookingID)
	assert.Equal(t, model.AppointmentStatusPending, apt.Status)
	assert.Equal(t, []string{messaging.ChannelQueueUpdated}, broker.published)
}

func TestCreateAppointmentRetriesBookingIDCollision(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.collideCreates = 2

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^BK-20260310-\d{4}$`), apt.BookingID)
	assert.Equal(t, 3, repo.createCalls, "two collisions then a fresh ID")
}

func TestCreateAppointmentGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, repo, broker := newTestService(t)
	repo.collideCreates = 100

	_, err := svc.CreateAppointment(context.Background(), createRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
	assert.Empty(t, broker.published, "no queue update for a failed create")
}

func TestCreateAppointmentSlotConflict(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.CreateAppointment(context.Background(), createRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCreateAppointmentInactiveService(t *testing.T) {
	svc, _, _ := newTestService(t)
	svc.services = &stubServiceRepo{svc: &model.Service{Name: "Teeth Cleaning", IsActive: false}}

	_, err := svc.CreateAppointment(context.Background(), createRequest())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrBadRequest, appErr.Code)
}

func TestConfirmRequiresPending(t *testing.T) {
	svc, _, _ := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, confirmed.Status)

	// A second confirm must be rejected.
	_, err = svc.Confirm(context.Background(), apt.ID)
	require.Error(t, err)
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrConflict, appErr.Code)
}

func TestCompleteRejectsTerminal(t *testing.T) {
	svc, _, _ := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), apt.ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), apt.ID)
	require.Error(t, err)
}

func TestCancelRecordsReason(t *testing.T) {
	svc, _, _ := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), apt.ID, "patient request")
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelReason)
	assert.Equal(t, "patient request", *cancelled.CancelReason)

	_, err = svc.Cancel(context.Background(), apt.ID, "again")
	require.Error(t, err)
}

func TestCancelRejectsCompleted(t *testing.T) {
	svc, _, _ := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), apt.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), apt.ID, "too late")
	require.Error(t, err)
}

func TestDeleteRequiresCancelled(t *testing.T) {
	svc, repo, _ := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	err = svc.DeleteAppointment(context.Background(), apt.ID)
	require.Error(t, err)

	_, err = svc.Cancel(context.Background(), apt.ID, "")
	require.NoError(t, err)

	err = svc.DeleteAppointment(context.Background(), apt.ID)
	require.NoError(t, err)
	assert.Empty(t, repo.byID)
}

func TestTransitionsPublishQueueUpdates(t *testing.T) {
	svc, _, broker := newTestService(t)

	apt, err := svc.CreateAppointment(context.Background(), createRequest())
	require.NoError(t, err)

	_, err = svc.Confirm(context.Background(), apt.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), apt.ID, "")
	require.NoError(t, err)

	// Create, confirm, cancel.
	assert.Len(t, broker.published, 3)
}
