package model

type ContactMessage struct {
	Base
	Name    string `db:"name" json:"name"`
	Email   string `db:"email" json:"email"`
	Subject string `db:"subject" json:"subject"`
	Message string `db:"message" json:"message"`
	IsRead  bool   `db:"is_read" json:"is_read"`
}

type CreateContactMessageRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=300"`
	Message string `json:"message" validate:"required,max=5000"`
}
