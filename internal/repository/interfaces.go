package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
)

// ErrDuplicateBookingID reports an insert that lost the race on the unique
// booking_id column. Callers regenerate the ID and retry.
var ErrDuplicateBookingID = errors.New("booking id already exists")

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id uuid.UUID) (*model.Appointment, error)
	GetByBookingID(ctx context.Context, bookingID string) (*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	ListForDate(ctx context.Context, date string) ([]*model.Appointment, error)
	ExistsAt(ctx context.Context, date, timeOfDay string) (bool, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*model.Service, error)
}

type PatientRepository interface {
	Create(ctx context.Context, p *model.Patient) error
	Get(ctx context.Context, id uuid.UUID) (*model.Patient, error)
	Update(ctx context.Context, p *model.Patient) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, page model.Pagination) ([]*model.Patient, int, error)
}

type TestimonialRepository interface {
	Create(ctx context.Context, t *model.Testimonial) error
	Get(ctx context.Context, id uuid.UUID) (*model.Testimonial, error)
	Update(ctx context.Context, t *model.Testimonial) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, activeOnly bool) ([]*model.Testimonial, error)
}

type ContactMessageRepository interface {
	Create(ctx context.Context, m *model.ContactMessage) error
	Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, unreadOnly bool) ([]*model.ContactMessage, error)
}

type BlogPostRepository interface {
	Create(ctx context.Context, post *model.BlogPost) error
	Get(ctx context.Context, id uuid.UUID) (*model.BlogPost, error)
	Update(ctx context.Context, post *model.BlogPost) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.BlogPostFilters) ([]*model.BlogPost, error)
}

type GalleryRepository interface {
	Create(ctx context.Context, item *model.GalleryItem) error
	Get(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error)
	Update(ctx context.Context, item *model.GalleryItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filters *model.GalleryFilters) ([]*model.GalleryItem, error)
}

type QueueStatisticsRepository interface {
	Upsert(ctx context.Context, stat *model.QueueStatistic) error
	ListForDate(ctx context.Context, date string) ([]*model.QueueStatistic, error)
}
