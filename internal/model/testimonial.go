package model

type Testimonial struct {
	Base
	PatientName string `db:"patient_name" json:"patient_name"`
	ServiceName string `db:"service_name" json:"service_name"`
	Rating      int    `db:"rating" json:"rating"`
	Comment     string `db:"comment" json:"comment"`
	IsActive    bool   `db:"is_active" json:"is_active"`
}

type CreateTestimonialRequest struct {
	PatientName string `json:"patient_name" validate:"required,max=200"`
	ServiceName string `json:"service_name" validate:"required,max=200"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
	Comment     string `json:"comment" validate:"required,max=2000"`
}

type UpdateTestimonialRequest struct {
	Rating   *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment  *string `json:"comment" validate:"omitempty,max=2000"`
	IsActive *bool   `json:"is_active"`
}
