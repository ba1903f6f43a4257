package queue

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func dayOf(entries ...Appointment) []Appointment {
	return entries
}

func apt(id, timeOfDay, service, status string) Appointment {
	return Appointment{
		BookingID:       id,
		AppointmentDate: "2026-03-10",
		AppointmentTime: timeOfDay,
		ServiceName:     service,
		Status:          status,
	}
}

func TestCalculateThirdInLine(t *testing.T) {
	all := dayOf(
		apt("BK-1", "09:00", "Teeth Whitening", "confirmed"),
		apt("BK-2", "09:30", "Teeth Cleaning", "pending"),
		apt("BK-3", "10:00", "Cavity Treatment", "pending"),
	)

	info := Calculate(all[2], all)

	assert.Equal(t, 3, info.QueueNumber)
	assert.Equal(t, 75, info.EstimatedWaitTime)
	assert.Equal(t, "11:15", info.ApproximateCallTime)
	assert.Equal(t, 2, info.TotalBefore)
	assert.Equal(t, "10:00", info.AppointmentTime)
}

func TestCalculateSkipsCancelled(t *testing.T) {
	all := dayOf(
		apt("BK-1", "09:00", "Teeth Whitening", "confirmed"),
		apt("BK-2", "09:30", "Teeth Cleaning", "cancelled"),
		apt("BK-3", "10:00", "Cavity Treatment", "pending"),
	)

	info := Calculate(all[2], all)

	assert.Equal(t, 2, info.QueueNumber)
	assert.Equal(t, 45, info.EstimatedWaitTime)
	assert.Equal(t, "10:45", info.ApproximateCallTime)
}

func TestCalculateFirstOfDayHasZeroWait(t *testing.T) {
	all := dayOf(
		apt("BK-1", "08:30", "Dental Implant", "confirmed"),
		apt("BK-2", "10:00", "Teeth Cleaning", "pending"),
	)

	info := Calculate(all[0], all)

	assert.Equal(t, 1, info.QueueNumber)
	assert.Zero(t, info.EstimatedWaitTime)
	assert.Equal(t, info.AppointmentTime, info.ApproximateCallTime)
}

func TestCalculateQueueNumbersAreSequential(t *testing.T) {
	times := []string{"09:00", "09:30", "10:00", "10:30", "11:00"}
	var all []Appointment
	for i, tm := range times {
		all = append(all, apt(fmt.Sprintf("BK-%d", i+1), tm, "Teeth Cleaning", "pending"))
	}

	prevWait := -1
	for i := range all {
		info := Calculate(all[i], all)
		assert.Equal(t, i+1, info.QueueNumber)
		assert.GreaterOrEqual(t, info.EstimatedWaitTime, prevWait, "wait must not decrease with position")
		prevWait = info.EstimatedWaitTime
	}
}

func TestCalculateCancelledDoesNotShiftOthers(t *testing.T) {
	base := dayOf(
		apt("BK-1", "09:00", "Teeth Whitening", "confirmed"),
		apt("BK-3", "10:00", "Cavity Treatment", "pending"),
	)
	withCancelled := dayOf(
		base[0],
		apt("BK-2", "09:30", "Dental Implant", "cancelled"),
		base[1],
	)

	for _, target := range base {
		assert.Equal(t, Calculate(target, base), Calculate(target, withCancelled))
	}
}

func TestCalculateUnknownServiceUsesDefaultDuration(t *testing.T) {
	all := dayOf(
		apt("BK-1", "09:00", "Unknown Procedure", "pending"),
		apt("BK-2", "10:00", "Teeth Cleaning", "pending"),
	)

	info := Calculate(all[1], all)

	assert.Equal(t, DefaultServiceDuration, info.EstimatedWaitTime)
}

func TestCalculateIgnoresOtherDates(t *testing.T) {
	target := apt("BK-2", "10:00", "Teeth Cleaning", "pending")
	all := []Appointment{
		{BookingID: "BK-0", AppointmentDate: "2026-03-09", AppointmentTime: "09:00", ServiceName: "Dental Implant", Status: "completed"},
		target,
		{BookingID: "BK-9", AppointmentDate: "2026-03-11", AppointmentTime: "08:00", ServiceName: "Gum Treatment", Status: "pending"},
	}

	info := Calculate(target, all)

	assert.Equal(t, 1, info.QueueNumber)
	assert.Zero(t, info.EstimatedWaitTime)
}

func TestCalculateEqualTimesTieBreakOnBookingID(t *testing.T) {
	first := apt("BK-20260310-1000", "09:00", "Teeth Cleaning", "pending")
	second := apt("BK-20260310-2000", "09:00", "Gum Treatment", "pending")
	all := dayOf(first, second)

	assert.Equal(t, 1, Calculate(first, all).QueueNumber)

	info := Calculate(second, all)
	assert.Equal(t, 2, info.QueueNumber)
	assert.Equal(t, 30, info.EstimatedWaitTime)
}

func TestCalculateTargetInListDoesNotCountItself(t *testing.T) {
	target := apt("BK-1", "09:00", "Teeth Cleaning", "pending")

	info := Calculate(target, dayOf(target))

	assert.Equal(t, 1, info.QueueNumber)
	assert.Zero(t, info.TotalBefore)
}

func TestCalculateDoesNotMutateInput(t *testing.T) {
	all := dayOf(
		apt("BK-2", "10:00", "Teeth Cleaning", "pending"),
		apt("BK-1", "09:00", "Teeth Whitening", "confirmed"),
	)

	Calculate(all[0], all)

	assert.Equal(t, "BK-2", all[0].BookingID, "input order must be preserved")
}

func TestServiceDuration(t *testing.T) {
	assert.Equal(t, 120, ServiceDuration("Braces Installation"))
	assert.Equal(t, 35, ServiceDuration("Tooth Extraction"))
	assert.Equal(t, DefaultServiceDuration, ServiceDuration("Unknown X"))
	assert.Equal(t, DefaultServiceDuration, ServiceDuration(""))
}
