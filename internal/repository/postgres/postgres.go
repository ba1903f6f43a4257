package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/futuresmile/clinic-api/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

type serviceRepository struct {
	db *sqlx.DB
}

func NewServiceRepository(db *sqlx.DB) repository.ServiceRepository {
	return &serviceRepository{db: db}
}

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

type testimonialRepository struct {
	db *sqlx.DB
}

func NewTestimonialRepository(db *sqlx.DB) repository.TestimonialRepository {
	return &testimonialRepository{db: db}
}

type contactMessageRepository struct {
	db *sqlx.DB
}

func NewContactMessageRepository(db *sqlx.DB) repository.ContactMessageRepository {
	return &contactMessageRepository{db: db}
}

type blogPostRepository struct {
	db *sqlx.DB
}

func NewBlogPostRepository(db *sqlx.DB) repository.BlogPostRepository {
	return &blogPostRepository{db: db}
}

type galleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepository(db *sqlx.DB) repository.GalleryRepository {
	return &galleryRepository{db: db}
}

type queueStatisticsRepository struct {
	db *sqlx.DB
}

func NewQueueStatisticsRepository(db *sqlx.DB) repository.QueueStatisticsRepository {
	return &queueStatisticsRepository{db: db}
}
