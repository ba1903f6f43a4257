// Package queue projects the day's appointments into queue positions and
// wait estimates. Nothing here is persisted: every call recomputes the
// projection from the appointments table, so the queue can never drift from
// the bookings.
package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/metrics"
	"github.com/futuresmile/clinic-api/pkg/queue"
)

type Service struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

func NewService(
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	m *metrics.Metrics,
	log *logger.Logger,
) *Service {
	return &Service{
		appointments: appointments,
		services:     services,
		metrics:      m,
		logger:       log.With("queue-service"),
		now:          time.Now,
	}
}

// CurrentQueue returns the queue for a date, every non-cancelled appointment
// annotated with its position, estimated wait and approximate call time. An
// empty date means today.
func (s *Service) CurrentQueue(ctx context.Context, date string) (*model.QueueStatus, error) {
	if date == "" {
		date = s.now().Format("2006-01-02")
	}

	appointments, err := s.appointments.ListForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load day's appointments: %w", err)
	}

	durations := s.durationTable(ctx)

	all := toEstimatorInput(appointments)
	entries := make([]model.QueueEntry, 0, len(appointments))
	for i, apt := range appointments {
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		info := queue.CalculateWith(durations, all[i], all)
		entries = append(entries, model.QueueEntry{
			BookingID:        apt.BookingID,
			PatientName:      apt.PatientName,
			ServiceName:      apt.ServiceName,
			Status:           string(apt.Status),
			AppointmentDate:  apt.AppointmentDate,
			AppointmentTime:  apt.AppointmentTime,
			QueuePosition:    info.QueueNumber,
			EstimatedWaitMin: info.EstimatedWaitTime,
			ApproxCallTime:   info.ApproximateCallTime,
		})
	}

	s.metrics.QueueLength.Set(float64(len(entries)))

	return &model.QueueStatus{
		Date:      date,
		Entries:   entries,
		Total:     len(entries),
		Timestamp: s.now(),
	}, nil
}

// TrackBooking returns the queue view for one booking: position, wait,
// recommended arrival and a human countdown.
func (s *Service) TrackBooking(ctx context.Context, bookingID string) (*model.BookingQueueInfo, error) {
	apt, err := s.appointments.GetByBookingID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	sameDay, err := s.appointments.ListForDate(ctx, apt.AppointmentDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load day's appointments: %w", err)
	}

	durations := s.durationTable(ctx)

	target := queue.Appointment{
		BookingID:       apt.BookingID,
		AppointmentDate: apt.AppointmentDate,
		AppointmentTime: apt.AppointmentTime,
		ServiceName:     apt.ServiceName,
		Status:          string(apt.Status),
	}
	info := queue.CalculateWith(durations, target, toEstimatorInput(sameDay))

	s.metrics.QueueEstimates.Inc()
	s.metrics.QueueEstimatedWait.Observe(float64(info.EstimatedWaitTime))

	countdown := queue.TimeUntil(s.now(), apt.AppointmentDate, apt.AppointmentTime)

	return &model.BookingQueueInfo{
		BookingID:           apt.BookingID,
		QueueNumber:         info.QueueNumber,
		EstimatedWaitMin:    info.EstimatedWaitTime,
		AppointmentDate:     apt.AppointmentDate,
		AppointmentTime:     apt.AppointmentTime,
		ApproximateCallTime: info.ApproximateCallTime,
		RecommendedArrival:  queue.RecommendedArrivalTime(apt.AppointmentTime),
		TimeOfDay:           queue.TimeOfDay(apt.AppointmentTime),
		Countdown:           queue.Describe(countdown),
		TotalBefore:         info.TotalBefore,
	}, nil
}

// durationTable loads per-service durations from the catalog. A failure here
// degrades to the static table rather than taking the queue down.
func (s *Service) durationTable(ctx context.Context) queue.Durations {
	services, err := s.services.List(ctx, false)
	if err != nil {
		s.logger.Error(err, "failed to load service durations, using defaults")
		return nil
	}

	table := make(queue.Durations, len(services))
	for _, svc := range services {
		if svc.Duration > 0 {
			table[svc.Name] = svc.Duration
		}
	}
	return table
}

func toEstimatorInput(appointments []*model.Appointment) []queue.Appointment {
	out := make([]queue.Appointment, len(appointments))
	for i, apt := range appointments {
		out[i] = queue.Appointment{
			BookingID:       apt.BookingID,
			AppointmentDate: apt.AppointmentDate,
			AppointmentTime: apt.AppointmentTime,
			ServiceName:     apt.ServiceName,
			Status:          string(apt.Status),
		}
	}
	return out
}
