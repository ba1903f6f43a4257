package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	"github.com/futuresmile/clinic-api/internal/service/notification"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/messaging"
	"github.com/futuresmile/clinic-api/pkg/metrics"
)

// bookingIDAttempts bounds how often a colliding booking ID is regenerated
// before the create is abandoned.
const bookingIDAttempts = 5

// Service owns appointment lifecycle rules: booking ID assignment, slot
// conflicts, and the pending → confirmed → completed / cancelled transitions.
type Service struct {
	repo     repository.AppointmentRepository
	services repository.ServiceRepository
	patients repository.PatientRepository
	notifier notification.Notifier
	broker   messaging.Broker
	metrics  *metrics.Metrics
	logger   *logger.Logger
	now      func() time.Time
}

func NewService(
	repo repository.AppointmentRepository,
	services repository.ServiceRepository,
	patients repository.PatientRepository,
	notifier notification.Notifier,
	broker messaging.Broker,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:     repo,
		services: services,
		patients: patients,
		notifier: notifier,
		broker:   broker,
		metrics:  m,
		logger:   log.With("appointment-service"),
		now:      time.Now,
	}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest) (*model.Appointment, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, fmt.Errorf("invalid patient: %w", err)
	}

	svc, err := s.services.Get(ctx, req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service: %w", err)
	}
	if !svc.IsActive {
		return nil, apperrors.BadRequest("service is not bookable", nil)
	}

	taken, err := s.repo.ExistsAt(ctx, req.AppointmentDate, req.AppointmentTime)
	if err != nil {
		return nil, fmt.Errorf("failed to check slot: %w", err)
	}
	if taken {
		return nil, apperrors.Conflict("time slot is already booked", nil)
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		ServiceID:       req.ServiceID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Status:          model.AppointmentStatusPending,
		Notes:           req.Notes,
	}

	// The booking ID suffix is random, so an insert can lose the race on
	// the unique column. Regenerate and retry a few times before giving up.
	created := false
	for attempt := 0; attempt < bookingIDAttempts; attempt++ {
		apt.BookingID = model.NewBookingID(s.now())
		err := s.repo.Create(ctx, apt)
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, repository.ErrDuplicateBookingID) {
			s.logger.Warn("booking ID collision, regenerating", "booking_id", apt.BookingID)
			continue
		}
		return nil, fmt.Errorf("failed to create appointment: %w", err)
	}
	if !created {
		return nil, apperrors.Conflict("could not allocate a booking ID", nil)
	}

	s.metrics.AppointmentsByStatus.WithLabelValues(string(apt.Status)).Inc()
	s.publishChange(ctx, apt)

	s.logger.Info("appointment created", "booking_id", apt.BookingID, "date", apt.AppointmentDate)
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error) {
	return s.repo.GetByBookingID(ctx, bookingID)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) ListToday(ctx context.Context) ([]*model.Appointment, error) {
	return s.repo.ListForDate(ctx, s.now().Format("2006-01-02"))
}

func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.AppointmentDate != nil {
		apt.AppointmentDate = *req.AppointmentDate
	}
	if req.AppointmentTime != nil {
		apt.AppointmentTime = *req.AppointmentTime
	}
	if req.Notes != nil {
		apt.Notes = *req.Notes
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.BadRequest("unknown appointment status", nil)
		}
		apt.Status = *req.Status
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.publishChange(ctx, apt)
	return apt, nil
}

// Confirm moves a pending appointment to confirmed and emails the patient.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusConfirmed, func(apt *model.Appointment) error {
		if apt.Status != model.AppointmentStatusPending {
			return apperrors.Conflict("only pending appointments can be confirmed", nil)
		}
		return nil
	})
}

// Complete marks a confirmed appointment as done.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	return s.transition(ctx, id, model.AppointmentStatusCompleted, func(apt *model.Appointment) error {
		if apt.Status.Terminal() {
			return apperrors.Conflict("appointment is already finished", nil)
		}
		return nil
	})
}

// Cancel cancels a non-terminal appointment, recording the reason.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*model.Appointment, error) {
	apt, err := s.transition(ctx, id, model.AppointmentStatusCancelled, func(apt *model.Appointment) error {
		if apt.Status == model.AppointmentStatusCancelled {
			return apperrors.Conflict("appointment is already cancelled", nil)
		}
		if apt.Status == model.AppointmentStatusCompleted {
			return apperrors.Conflict("cannot cancel a completed appointment", nil)
		}
		apt.CancelReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apt, nil
}

// DeleteAppointment removes a cancelled appointment from the books.
func (s *Service) DeleteAppointment(ctx context.Context, id uuid.UUID) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.Status != model.AppointmentStatusCancelled {
		return apperrors.Conflict("only cancelled appointments can be deleted", nil)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) transition(
	ctx context.Context,
	id uuid.UUID,
	to model.AppointmentStatus,
	check func(*model.Appointment) error,
) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := check(apt); err != nil {
		return nil, err
	}

	apt.Status = to
	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}

	s.metrics.AppointmentsByStatus.WithLabelValues(string(to)).Inc()
	s.publishChange(ctx, apt)
	s.notify(ctx, apt)

	return apt, nil
}

// publishChange fans queue updates out to subscribers. Broker failures are
// logged, never surfaced: the poll cycle is the fallback delivery path.
func (s *Service) publishChange(ctx context.Context, apt *model.Appointment) {
	if s.broker == nil {
		return
	}
	event := messaging.QueueUpdated{
		BookingID:       apt.BookingID,
		AppointmentDate: apt.AppointmentDate,
		Status:          string(apt.Status),
	}
	if err := s.broker.Publish(ctx, messaging.ChannelQueueUpdated, event); err != nil {
		s.metrics.QueueEventsFailed.Inc()
		s.logger.Error(err, "failed to publish queue update", "booking_id", apt.BookingID)
		return
	}
	s.metrics.QueueEventsPublished.Inc()
}

func (s *Service) notify(ctx context.Context, apt *model.Appointment) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStatusChange(ctx, apt); err != nil {
		s.logger.Error(err, "failed to send notification", "booking_id", apt.BookingID)
	}
}
