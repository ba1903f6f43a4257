package model

// Patient holds contact and medical intake details.
type Patient struct {
	Base
	FullName       string  `db:"full_name" json:"full_name"`
	Phone          string  `db:"phone" json:"phone"`
	Email          *string `db:"email" json:"email,omitempty"`
	DateOfBirth    *string `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Address        *string `db:"address" json:"address,omitempty"`
	MedicalHistory *string `db:"medical_history" json:"medical_history,omitempty"`
}

type CreatePatientRequest struct {
	FullName       string  `json:"full_name" validate:"required,max=200"`
	Phone          string  `json:"phone" validate:"required,phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}

type UpdatePatientRequest struct {
	FullName       *string `json:"full_name" validate:"omitempty,max=200"`
	Phone          *string `json:"phone" validate:"omitempty,phone"`
	Email          *string `json:"email" validate:"omitempty,email"`
	DateOfBirth    *string `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Address        *string `json:"address"`
	MedicalHistory *string `json:"medical_history"`
}
