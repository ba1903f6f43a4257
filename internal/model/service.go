package model

// Service is a treatment the clinic offers. Duration is in minutes and
// feeds the queue wait-time estimates.
type Service struct {
	Base
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	PriceMin    float64 `db:"price_min" json:"price_min"`
	PriceMax    float64 `db:"price_max" json:"price_max"`
	Duration    int     `db:"duration" json:"duration"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

type CreateServiceRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	PriceMin    float64 `json:"price_min" validate:"gte=0"`
	PriceMax    float64 `json:"price_max" validate:"gtefield=PriceMin"`
	Duration    int     `json:"duration" validate:"required,gt=0,lte=480"`
}

type UpdateServiceRequest struct {
	Name        *string  `json:"name" validate:"omitempty,max=200"`
	Description *string  `json:"description"`
	PriceMin    *float64 `json:"price_min" validate:"omitempty,gte=0"`
	PriceMax    *float64 `json:"price_max" validate:"omitempty,gte=0"`
	Duration    *int     `json:"duration" validate:"omitempty,gt=0,lte=480"`
	IsActive    *bool    `json:"is_active"`
}
