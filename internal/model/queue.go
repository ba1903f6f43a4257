package model

import (
	"time"

	"github.com/google/uuid"
)

// QueueEntry is one appointment in the day's queue, annotated with its
// derived position and wait. It is never persisted; the queue is recomputed
// from the appointments table on every request.
type QueueEntry struct {
	BookingID        string `json:"booking_id"`
	PatientName      string `json:"patient_name"`
	ServiceName      string `json:"service_name"`
	Status           string `json:"status"`
	AppointmentDate  string `json:"appointment_date"`
	AppointmentTime  string `json:"appointment_time"`
	QueuePosition    int    `json:"queue_position"`
	EstimatedWaitMin int    `json:"estimated_wait_minutes"`
	ApproxCallTime   string `json:"approximate_call_time"`
}

// QueueStatus is the full current-queue payload.
type QueueStatus struct {
	Date      string       `json:"date"`
	Entries   []QueueEntry `json:"results"`
	Total     int          `json:"total"`
	Timestamp time.Time    `json:"timestamp"`
}

// BookingQueueInfo is the tracked view for a single booking.
type BookingQueueInfo struct {
	BookingID           string `json:"booking_id"`
	QueueNumber         int    `json:"queue_number"`
	EstimatedWaitMin    int    `json:"estimated_wait_minutes"`
	AppointmentDate     string `json:"appointment_date"`
	AppointmentTime     string `json:"appointment_time"`
	ApproximateCallTime string `json:"approximate_call_time"`
	RecommendedArrival  string `json:"recommended_arrival_time"`
	TimeOfDay           string `json:"time_of_day"`
	Countdown           string `json:"countdown"`
	TotalBefore         int    `json:"total_before"`
}

// QueueStatistic is the daily per-service aggregate the statistics worker
// maintains.
type QueueStatistic struct {
	Base
	ServiceID          uuid.UUID `db:"service_id" json:"service_id"`
	ServiceName        string    `db:"service_name" json:"service_name"`
	AppointmentDate    string    `db:"appointment_date" json:"appointment_date"`
	TotalAppointments  int       `db:"total_appointments" json:"total_appointments"`
	CompletedCount     int       `db:"completed_count" json:"completed_count"`
	AverageWaitMinutes int       `db:"average_wait_minutes" json:"average_wait_minutes"`
	MaxWaitMinutes     int       `db:"max_wait_minutes" json:"max_wait_minutes"`
}
