package worker

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/metrics"
	"github.com/futuresmile/clinic-api/pkg/queue"
)

// QueueStatisticsConfig controls the aggregation worker.
type QueueStatisticsConfig struct {
	Interval time.Duration `yaml:"interval" envconfig:"STATS_INTERVAL"`
}

// QueueStatisticsWorker periodically rolls the day's appointments up into
// per-service queue statistics: bookings, completions, and the wait times
// the estimator handed out.
type QueueStatisticsWorker struct {
	appointments repository.AppointmentRepository
	services     repository.ServiceRepository
	stats        repository.QueueStatisticsRepository
	config       QueueStatisticsConfig
	metrics      *metrics.Metrics
	logger       *logger.Logger
	now          func() time.Time
}

func NewQueueStatisticsWorker(
	appointments repository.AppointmentRepository,
	services repository.ServiceRepository,
	stats repository.QueueStatisticsRepository,
	config QueueStatisticsConfig,
	m *metrics.Metrics,
	log *logger.Logger,
) *QueueStatisticsWorker {
	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}
	return &QueueStatisticsWorker{
		appointments: appointments,
		services:     services,
		stats:        stats,
		config:       config,
		metrics:      m,
		logger:       log.With("queue-statistics"),
		now:          time.Now,
	}
}

// Start runs aggregation on the configured interval until ctx is cancelled.
func (w *QueueStatisticsWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.Interval)
	defer ticker.Stop()

	w.logger.Info("starting queue statistics worker", "interval", w.config.Interval.String())

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("stopping queue statistics worker")
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx, w.now().Format("2006-01-02")); err != nil {
				w.metrics.StatisticsRunsTotal.WithLabelValues("error").Inc()
				w.logger.Error(err, "statistics aggregation failed")
				continue
			}
			w.metrics.StatisticsRunsTotal.WithLabelValues("success").Inc()
		}
	}
}

// RunOnce aggregates a single date.
func (w *QueueStatisticsWorker) RunOnce(ctx context.Context, date string) error {
	started := w.now()
	defer func() {
		w.metrics.StatisticsRunDuration.Observe(w.now().Sub(started).Seconds())
	}()

	appointments, err := w.appointments.ListForDate(ctx, date)
	if err != nil {
		return err
	}
	if len(appointments) == 0 {
		return nil
	}

	durations := w.durationTable(ctx)
	all := make([]queue.Appointment, len(appointments))
	for i, apt := range appointments {
		all[i] = queue.Appointment{
			BookingID:       apt.BookingID,
			AppointmentDate: apt.AppointmentDate,
			AppointmentTime: apt.AppointmentTime,
			ServiceName:     apt.ServiceName,
			Status:          string(apt.Status),
		}
	}

	type agg struct {
		serviceName string
		total       int
		completed   int
		waitSum     int
		waitMax     int
	}
	byService := make(map[uuid.UUID]*agg)

	for i, apt := range appointments {
		if apt.Status == model.AppointmentStatusCancelled {
			continue
		}
		a := byService[apt.ServiceID]
		if a == nil {
			a = &agg{serviceName: apt.ServiceName}
			byService[apt.ServiceID] = a
		}
		a.total++

		if apt.Status != model.AppointmentStatusCompleted {
			continue
		}
		info := queue.CalculateWith(durations, all[i], all)
		a.completed++
		a.waitSum += info.EstimatedWaitTime
		if info.EstimatedWaitTime > a.waitMax {
			a.waitMax = info.EstimatedWaitTime
		}
	}

	for serviceID, a := range byService {
		avg := 0
		if a.completed > 0 {
			avg = a.waitSum / a.completed
		}
		stat := &model.QueueStatistic{
			ServiceID:          serviceID,
			ServiceName:        a.serviceName,
			AppointmentDate:    date,
			TotalAppointments:  a.total,
			CompletedCount:     a.completed,
			AverageWaitMinutes: avg,
			MaxWaitMinutes:     a.waitMax,
		}
		if err := w.stats.Upsert(ctx, stat); err != nil {
			return err
		}
	}

	w.logger.Info("aggregated queue statistics", "date", date, "services", len(byService))
	return nil
}

func (w *QueueStatisticsWorker) durationTable(ctx context.Context) queue.Durations {
	services, err := w.services.List(ctx, false)
	if err != nil {
		w.logger.Error(err, "failed to load service durations, using defaults")
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
