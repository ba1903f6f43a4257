package messaging

import (
	"context"
)

// Broker is the pub/sub transport behind queue update notifications.
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// ChannelQueueUpdated carries queue refresh notifications.
const ChannelQueueUpdated = "queue.updated"

// QueueUpdated is published whenever an appointment is created or changes
// status, so dashboards and trackers can refresh ahead of their next poll.
type QueueUpdated struct {
	BookingID       string `json:"booking_id"`
	AppointmentDate string `json:"appointment_date"`
	Status          string `json:"status"`
}
