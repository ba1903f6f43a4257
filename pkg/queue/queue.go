// Package queue derives queue positions and wait-time estimates from a day's
// appointment list. All functions are pure: the queue is a projection over the
// appointments, recomputed from scratch on every call.
package queue

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Appointment is the minimal view of a booking the estimator needs.
type Appointment struct {
	BookingID       string `json:"booking_id,omitempty"`
	AppointmentDate string `json:"appointment_date"` // "YYYY-MM-DD"
	AppointmentTime string `json:"appointment_time"` // "HH:MM", 24-hour
	ServiceName     string `json:"service_name"`
	Status          string `json:"status"`
}

// Info is the derived queue state for a single appointment.
type Info struct {
	QueueNumber         int    `json:"queue_number"`
	EstimatedWaitTime   int    `json:"estimated_wait_minutes"`
	AppointmentTime     string `json:"appointment_time"`
	ApproximateCallTime string `json:"approximate_call_time"`
	Position            int    `json:"position"`
	TotalBefore         int    `json:"total_before"`
}

// StatusCancelled is the only status excluded from queue projections.
const StatusCancelled = "cancelled"

// DefaultServiceDuration is used when a service name has no table entry.
const DefaultServiceDuration = 45

// serviceDurations maps service names to expected duration in minutes.
var serviceDurations = map[string]int{
	"Teeth Whitening":     45,
	"Braces Installation": 120,
	"Cavity Treatment":    40,
	"Dental Implant":      90,
	"Cosmetic Fillings":   50,
	"Teeth Cleaning":      30,
	"Gum Treatment":       60,
	"Tooth Extraction":    35,
}

// ServiceDuration returns the expected duration in minutes for a service,
// falling back to DefaultServiceDuration for unknown names.
func ServiceDuration(serviceName string) int {
	if d, ok := serviceDurations[serviceName]; ok {
		return d
	}
	return DefaultServiceDuration
}

// Durations overrides the static table, typically with durations loaded from
// the services catalog. Names absent from the override fall back to the
// static table and then to the default.
type Durations map[string]int

// Of resolves a service name to its expected duration in minutes.
func (d Durations) Of(serviceName string) int {
	if d != nil {
		if v, ok := d[serviceName]; ok {
			return v
		}
	}
	return ServiceDuration(serviceName)
}

// Calculate computes the queue position and estimated wait for target given
// every appointment known for its day. Appointments on other dates and
// cancelled appointments are ignored. An appointment counts as "before" the
// target when its time is strictly earlier, or when the times are equal and
// its booking ID sorts strictly lower than the target's; equal-time entries
// without a booking ID never count, so the target can appear in the input
// list without inflating its own position.
func Calculate(target Appointment, all []Appointment) Info {
	return CalculateWith(nil, target, all)
}

// CalculateWith is Calculate with an explicit duration table.
func CalculateWith(durations Durations, target Appointment, all []Appointment) Info {
	targetMinutes := parseMinutes(target.AppointmentTime)

	sorted := make([]Appointment, len(all))
	copy(sorted, all)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].AppointmentDate != sorted[j].AppointmentDate {
			return sorted[i].AppointmentDate < sorted[j].AppointmentDate
		}
		return parseMinutes(sorted[i].AppointmentTime) < parseMinutes(sorted[j].AppointmentTime)
	})

	before := 0
	waitTime := 0
	for _, apt := range sorted {
		if apt.Status == StatusCancelled {
			continue
		}
		if apt.AppointmentDate != target.AppointmentDate {
			if apt.AppointmentDate < target.AppointmentDate {
				continue
			}
			break
		}

		m := parseMinutes(apt.AppointmentTime)
		if m > targetMinutes {
			// Sorted by time, so nothing later can be before the target.
			break
		}
		if m < targetMinutes {
			before++
			waitTime += durations.Of(apt.ServiceName)
			continue
		}
		if apt.BookingID != "" && target.BookingID != "" && apt.BookingID < target.BookingID {
			before++
			waitTime += durations.Of(apt.ServiceName)
		}
	}

	if waitTime < 0 {
		waitTime = 0
	}

	return Info{
		QueueNumber:         before + 1,
		EstimatedWaitTime:   waitTime,
		AppointmentTime:     target.AppointmentTime,
		ApproximateCallTime: formatMinutes(targetMinutes + waitTime),
		Position:            before,
		TotalBefore:         before,
	}
}

// parseMinutes converts "HH:MM" to minutes since midnight. Malformed input
// degrades to zero rather than erroring, matching the estimator's
// no-validation contract.
func parseMinutes(hhmm string) int {
	h, m, ok := strings.Cut(hhmm, ":")
	if !ok {
		return 0
	}
	hour, _ := strconv.Atoi(h)
	min, _ := strconv.Atoi(m)
	return hour*60 + min
}

// formatMinutes renders minutes since midnight as "HH:MM". Values past
// midnight keep counting hours upward rather than wrapping.
func formatMinutes(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
