package queue

import (
	"fmt"
	"time"
)

// Time-of-day labels returned by TimeOfDay.
const (
	Morning   = "morning"
	Afternoon = "afternoon"
	Evening   = "evening"
	Night     = "night"
)

// arrivalLeadMinutes is how early patients are asked to show up.
const arrivalLeadMinutes = 15

// RecommendedArrivalTime returns the "HH:MM" a patient should arrive by,
// fifteen minutes before the appointment, rolling back across midnight when
// the appointment is in the first quarter hour of the day.
func RecommendedArrivalTime(appointmentTime string) string {
	total := parseMinutes(appointmentTime) - arrivalLeadMinutes
	if total < 0 {
		total += 24 * 60
	}
	return formatMinutes(total)
}

// TimeOfDay buckets an appointment time into morning (05–12),
// afternoon (12–17), evening (17–21) or night.
func TimeOfDay(appointmentTime string) string {
	hour := parseMinutes(appointmentTime) / 60
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 21:
		return Evening
	default:
		return Night
	}
}

// Countdown describes how far away an appointment is from a reference time.
type Countdown struct {
	Days         int  `json:"days"`
	Hours        int  `json:"hours"`
	Minutes      int  `json:"minutes"`
	TotalMinutes int  `json:"total_minutes"`
	IsPast       bool `json:"is_past"`
}

// TimeUntil computes the countdown from now to the appointment's local
// date+time. Components are clamped to zero; IsPast flags appointments that
// have already started.
func TimeUntil(now time.Time, appointmentDate, appointmentTime string) Countdown {
	day, err := time.ParseInLocation("2006-01-02", appointmentDate, now.Location())
	if err != nil {
		day = now
	}
	at := day.Add(time.Duration(parseMinutes(appointmentTime)) * time.Minute)

	// Floor toward negative infinity so a booking even seconds past
	// already counts as in the past.
	d := at.Sub(now)
	diff := int(d / time.Minute)
	if d < 0 && d%time.Minute != 0 {
		diff--
	}
	days := diff / (24 * 60)
	hours := (diff % (24 * 60)) / 60
	minutes := diff % 60

	return Countdown{
		Days:         max(0, days),
		Hours:        max(0, hours),
		Minutes:      max(0, minutes),
		TotalMinutes: max(0, diff),
		IsPast:       diff < 0,
	}
}

// Describe renders a countdown as a short phrase for confirmation screens.
func Describe(c Countdown) string {
	switch {
	case c.IsPast:
		return "in the past"
	case c.Days == 0 && c.Hours == 0:
		return fmt.Sprintf("in %d minutes", c.Minutes)
	case c.Days == 0:
		return fmt.Sprintf("in %d hours and %d minutes", c.Hours, c.Minutes)
	case c.Days == 1:
		return "tomorrow"
	default:
		return fmt.Sprintf("in %d days", c.Days)
	}
}
