// Package tracker keeps a live view of a clinic's appointment queue by
// polling the REST API and projecting positions and waits for a tracked
// booking.
package tracker

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/futuresmile/clinic-api/pkg/client"
	"github.com/futuresmile/clinic-api/pkg/logger"
	"github.com/futuresmile/clinic-api/pkg/queue"
)

// Default poll intervals. Tracking a single booking polls faster than a
// whole-queue dashboard view.
const (
	DefaultBookingInterval = 5 * time.Second
	DefaultQueueInterval   = 30 * time.Second
)

// Entry is one appointment in the server's current-queue payload. Position
// and wait fields are present when the server computed them; zero position
// means the server left the projection to the client.
type Entry struct {
	BookingID        string `json:"booking_id"`
	PatientName      string `json:"patient_name"`
	ServiceName      string `json:"service_name"`
	Status           string `json:"status"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	QueuePosition    int    `json:"queue_position"`
	EstimatedWaitMin int    `json:"estimated_wait_minutes"`
}

// Snapshot is the tracker's view after a poll tick.
type Snapshot struct {
	Items           []Entry
	CurrentPosition int // 0 when the tracked booking is not in the queue
	CurrentWaitMin  int
	TotalInQueue    int
	NextPosition    int
	NextPatientName string
	LastUpdated     time.Time
	Err             string // error from the most recent failed tick, empty on success
}

// Config holds tracker settings.
type Config struct {
	BookingID string        // optional booking to follow
	QueuePath string        // defaults to "/api/v1/queue/current"
	Interval  time.Duration // defaults per BookingID presence
}

// Tracker polls the queue endpoint and exposes the latest snapshot.
type Tracker struct {
	api    *client.Client
	cfg    Config
	logger *logger.Logger

	mu       sync.Mutex
	snapshot Snapshot
	cancel   context.CancelFunc
	done     chan struct{}
}

// New creates a tracker. Start must be called to begin polling.
func New(api *client.Client, cfg Config, log *logger.Logger) *Tracker {
	if cfg.QueuePath == "" {
		cfg.QueuePath = "/api/v1/queue/current"
	}
	if cfg.Interval <= 0 {
		if cfg.BookingID != "" {
			cfg.Interval = DefaultBookingInterval
		} else {
			cfg.Interval = DefaultQueueInterval
		}
	}
	return &Tracker{api: api, cfg: cfg, logger: log.With("tracker")}
}

// Start fetches immediately, then polls until ctx is cancelled or Stop is
// called. A failed tick records the error on the snapshot and polling
// continues; the next tick is the retry policy.
func (t *Tracker) Start(ctx context.Context) {
	t.mu.Lock()
	if t.cancel != nil {
		t.mu.Unlock()
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	t.mu.Unlock()

	go t.run(ctx)
}

// Stop halts polling. A tick already in flight will not commit its result.
func (t *Tracker) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel = nil
	t.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}

// Refresh forces an immediate fetch outside the polling schedule.
func (t *Tracker) Refresh(ctx context.Context) error {
	return t.tick(ctx)
}

// Snapshot returns the most recent view of the queue.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.snapshot
	snap.Items = append([]Entry(nil), t.snapshot.Items...)
	return snap
}

func (t *Tracker) run(ctx context.Context) {
	defer close(t.done)

	if err := t.tick(ctx); err != nil {
		t.logger.Warn("initial queue fetch failed", "error", err.Error())
	}

	ticker := time.NewTicker(t.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := t.tick(ctx); err != nil {
				t.logger.Warn("queue fetch failed", "error", err.Error())
			}
		}
	}
}

func (t *Tracker) tick(ctx context.Context) error {
	var list client.List[Entry]
	err := t.api.Get(ctx, t.cfg.QueuePath, &list)

	// A fetch that lost to Stop must not overwrite the snapshot.
	if ctx.Err() != nil {
		return ctx.Err()
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if err != nil {
		t.snapshot.Err = err.Error()
		return err
	}

	t.snapshot = t.project(list.Items)
	return nil
}

// project builds a snapshot from the fetched entries. Server-reported
// positions and waits are authoritative; when the server omits them the
// tracker recomputes locally with the same estimator the server uses.
func (t *Tracker) project(items []Entry) Snapshot {
	active := items[:0:0]
	for _, it := range items {
		if it.Status != queue.StatusCancelled {
			active = append(active, it)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].AppointmentDate != active[j].AppointmentDate {
			return active[i].AppointmentDate < active[j].AppointmentDate
		}
		return active[i].AppointmentTime < active[j].AppointmentTime
	})

	snap := Snapshot{
		Items:        active,
		TotalInQueue: len(active),
		LastUpdated:  time.Now(),
	}

	if t.cfg.BookingID == "" {
		return snap
	}

	for i, it := range active {
		if it.BookingID != t.cfg.BookingID {
			continue
		}
		if it.QueuePosition > 0 {
			snap.CurrentPosition = it.QueuePosition
			snap.CurrentWaitMin = it.EstimatedWaitMin
		} else {
			info := queue.Calculate(toAppointment(it), toAppointments(active))
			snap.CurrentPosition = info.QueueNumber
			snap.CurrentWaitMin = info.EstimatedWaitTime
		}
		// Next in line is whoever sits behind the tracked booking in the
		// sorted queue, regardless of whether the server reported positions.
		if i+1 < len(active) {
			next := active[i+1]
			snap.NextPosition = snap.CurrentPosition + 1
			snap.NextPatientName = next.PatientName
		}
		break
	}

	return snap
}

func toAppointment(e Entry) queue.Appointment {
	return queue.Appointment{
		BookingID:       e.BookingID,
		AppointmentDate: e.AppointmentDate,
		AppointmentTime: e.AppointmentTime,
		ServiceName:     e.ServiceName,
		Status:          e.Status,
	}
}

func toAppointments(entries []Entry) []queue.Appointment {
	out := make([]queue.Appointment, len(entries))
	for i, e := range entries {
		out[i] = toAppointment(e)
	}
	return out
}
