package tracker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/futuresmile/clinic-api/pkg/client"
	"github.com/futuresmile/clinic-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(&logger.Config{Level: logger.ErrorLevel, Output: io.Discard})
}

func queueServer(t *testing.T, body string, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

const currentQueue = `{"results": [
	{"booking_id": "BK-20260310-0001", "patient_name": "Amina", "service_name": "Teeth Whitening",
	 "status": "confirmed", "appointment_date": "2026-03-10", "appointment_time": "09:00",
	 "queue_position": 1, "estimated_wait_minutes": 0},
	{"booking_id": "BK-20260310-0002", "patient_name": "Karim", "service_name": "Teeth Cleaning",
	 "status": "pending", "appointment_date": "2026-03-10", "appointment_time": "09:30",
	 "queue_position": 2, "estimated_wait_minutes": 45},
	{"booking_id": "BK-20260310-0003", "patient_name": "Sara", "service_name": "Cavity Treatment",
	 "status": "pending", "appointment_date": "2026-03-10", "appointment_time": "10:00",
	 "queue_position": 3, "estimated_wait_minutes": 75}
]}`

func TestRefreshUsesServerReportedPosition(t *testing.T) {
	srv, _ := queueServer(t, currentQueue, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0003"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.Equal(t, 3, snap.CurrentPosition)
	assert.Equal(t, 75, snap.CurrentWaitMin)
	assert.Equal(t, 3, snap.TotalInQueue)
	assert.Empty(t, snap.Err)
}

func TestRefreshFindsNextInLine(t *testing.T) {
	srv, _ := queueServer(t, currentQueue, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0002"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.CurrentPosition)
	assert.Equal(t, 3, snap.NextPosition)
	assert.Equal(t, "Sara", snap.NextPatientName)
}

func TestRefreshUnwrapsSuccessEnvelope(t *testing.T) {
	// Exact shape the API server emits for /queue/current: the success
	// envelope wrapping the queue status object.
	body := `{"success": true, "data": {"date": "2026-03-10", "results": [
		{"booking_id": "BK-20260310-0001", "patient_name": "Amina", "service_name": "Teeth Whitening",
		 "status": "confirmed", "appointment_date": "2026-03-10", "appointment_time": "09:00",
		 "queue_position": 1, "estimated_wait_minutes": 0},
		{"booking_id": "BK-20260310-0002", "patient_name": "Karim", "service_name": "Teeth Cleaning",
		 "status": "pending", "appointment_date": "2026-03-10", "appointment_time": "09:30",
		 "queue_position": 2, "estimated_wait_minutes": 45}
	], "total": 2, "timestamp": "2026-03-10T08:00:00Z"}}`
	srv, _ := queueServer(t, body, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0002"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.TotalInQueue)
	assert.Equal(t, 2, snap.CurrentPosition)
	assert.Equal(t, 45, snap.CurrentWaitMin)
}

func TestRefreshFallsBackToLocalEstimator(t *testing.T) {
	// Bare array, no server-computed positions.
	body := `[
		{"booking_id": "BK-1", "patient_name": "Amina", "service_name": "Teeth Whitening",
		 "status": "confirmed", "appointment_date": "2026-03-10", "appointment_time": "09:00"},
		{"booking_id": "BK-2", "patient_name": "Karim", "service_name": "Teeth Cleaning",
		 "status": "cancelled", "appointment_date": "2026-03-10", "appointment_time": "09:30"},
		{"booking_id": "BK-3", "patient_name": "Sara", "service_name": "Cavity Treatment",
		 "status": "pending", "appointment_date": "2026-03-10", "appointment_time": "10:00"}
	]`
	srv, _ := queueServer(t, body, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-3"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.Equal(t, 2, snap.CurrentPosition, "cancelled entry must not count")
	assert.Equal(t, 45, snap.CurrentWaitMin)
	assert.Equal(t, 2, snap.TotalInQueue)
}

func TestFallbackStillFindsNextInLine(t *testing.T) {
	// No server positions at all: next-in-line comes from queue order,
	// skipping the cancelled entry.
	body := `[
		{"booking_id": "BK-1", "patient_name": "Amina", "service_name": "Teeth Whitening",
		 "status": "confirmed", "appointment_date": "2026-03-10", "appointment_time": "09:00"},
		{"booking_id": "BK-2", "patient_name": "Karim", "service_name": "Teeth Cleaning",
		 "status": "cancelled", "appointment_date": "2026-03-10", "appointment_time": "09:30"},
		{"booking_id": "BK-3", "patient_name": "Sara", "service_name": "Cavity Treatment",
		 "status": "pending", "appointment_date": "2026-03-10", "appointment_time": "10:00"}
	]`
	srv, _ := queueServer(t, body, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-1"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.Equal(t, 1, snap.CurrentPosition)
	assert.Equal(t, 2, snap.NextPosition)
	assert.Equal(t, "Sara", snap.NextPatientName)
}

func TestFailedTickKeepsItemsAndSurfacesError(t *testing.T) {
	var fail atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			http.Error(w, "queue unavailable", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(currentQueue))
	}))
	t.Cleanup(srv.Close)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0001"}, testLogger())
	require.NoError(t, tr.Refresh(context.Background()))

	fail.Store(true)
	assert.Error(t, tr.Refresh(context.Background()))

	snap := tr.Snapshot()
	assert.NotEmpty(t, snap.Err)
	assert.Len(t, snap.Items, 3, "last good items survive a failed tick")

	fail.Store(false)
	require.NoError(t, tr.Refresh(context.Background()))
	assert.Empty(t, tr.Snapshot().Err, "a successful tick clears the error")
}

func TestCancelledContextDoesNotCommit(t *testing.T) {
	srv, _ := queueServer(t, currentQueue, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0001"}, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, tr.Refresh(ctx))
	assert.Zero(t, tr.Snapshot().TotalInQueue)
}

func TestStartPollsAndStopHalts(t *testing.T) {
	srv, hits := queueServer(t, currentQueue, http.StatusOK)
	api := client.New(client.Config{BaseURL: srv.URL})

	tr := New(api, Config{BookingID: "BK-20260310-0001", Interval: 10 * time.Millisecond}, testLogger())
	tr.Start(context.Background())

	assert.Eventually(t, func() bool { return hits.Load() >= 3 }, time.Second, 5*time.Millisecond)
	tr.Stop()

	settled := hits.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, settled, hits.Load(), "no ticks after Stop")
	assert.Equal(t, 1, tr.Snapshot().CurrentPosition)
}

func TestDefaultIntervals(t *testing.T) {
	api := client.New(client.Config{BaseURL: "http://localhost"})

	assert.Equal(t, DefaultBookingInterval, New(api, Config{BookingID: "BK-1"}, testLogger()).cfg.Interval)
	assert.Equal(t, DefaultQueueInterval, New(api, Config{}, testLogger()).cfg.Interval)
}
