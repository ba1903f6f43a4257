package model

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Terminal reports whether the status permits no further transitions.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// Valid reports whether s is one of the known statuses.
func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusConfirmed,
		AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// Appointment is a booking for one service slot. Date and time are separate
// fields: the date is date-only and the time is a minute-precision "HH:MM"
// wall-clock value with no timezone attached.
type Appointment struct {
	Base
	BookingID       string            `db:"booking_id" json:"booking_id"`
	PatientID       uuid.UUID         `db:"patient_id" json:"patient_id"`
	ServiceID       uuid.UUID         `db:"service_id" json:"service_id"`
	PatientName     string            `db:"patient_name" json:"patient_name,omitempty"`
	ServiceName     string            `db:"service_name" json:"service_name,omitempty"`
	AppointmentDate string            `db:"appointment_date" json:"appointment_date"`
	AppointmentTime string            `db:"appointment_time" json:"appointment_time"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Notes           string            `db:"notes" json:"notes,omitempty"`
	CancelReason    *string           `db:"cancel_reason" json:"cancel_reason,omitempty"`
}

// NewBookingID generates a booking reference in the form BK-YYYYMMDD-####.
func NewBookingID(now time.Time) string {
	return fmt.Sprintf("BK-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

type CreateAppointmentRequest struct {
	PatientID       uuid.UUID `json:"patient_id" validate:"required"`
	ServiceID       uuid.UUID `json:"service_id" validate:"required"`
	AppointmentDate string    `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string    `json:"appointment_time" validate:"required,hhmm"`
	Notes           string    `json:"notes" validate:"max=1000"`
}

type UpdateAppointmentRequest struct {
	AppointmentDate *string            `json:"appointment_date" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string            `json:"appointment_time" validate:"omitempty,hhmm"`
	Status          *AppointmentStatus `json:"status"`
	Notes           *string            `json:"notes" validate:"omitempty,max=1000"`
}

// AppointmentFilters narrows appointment listings.
type AppointmentFilters struct {
	PatientID uuid.UUID
	ServiceID uuid.UUID
	Status    AppointmentStatus
	StartDate string
	EndDate   string
}
