package model

// Treatment types a gallery item can be tagged with.
const (
	TreatmentWhitening    = "whitening"
	TreatmentVeneers      = "veneers"
	TreatmentImplants     = "implants"
	TreatmentOrthodontics = "orthodontics"
	TreatmentCosmetic     = "cosmetic"
	TreatmentOther        = "other"
)

type GalleryItem struct {
	Base
	Title             string `db:"title" json:"title"`
	Description       string `db:"description" json:"description"`
	TreatmentType     string `db:"treatment_type" json:"treatment_type"`
	BeforeImageURL    string `db:"before_image_url" json:"before_image_url"`
	AfterImageURL     string `db:"after_image_url" json:"after_image_url"`
	PatientAge        *int   `db:"patient_age" json:"patient_age,omitempty"`
	TreatmentDuration string `db:"treatment_duration" json:"treatment_duration"`
	IsFeatured        bool   `db:"is_featured" json:"is_featured"`
	IsActive          bool   `db:"is_active" json:"is_active"`
	DisplayOrder      int    `db:"display_order" json:"display_order"`
}

type CreateGalleryItemRequest struct {
	Title             string `json:"title" validate:"required,max=200"`
	Description       string `json:"description"`
	TreatmentType     string `json:"treatment_type" validate:"required,oneof=whitening veneers implants orthodontics cosmetic other"`
	BeforeImageURL    string `json:"before_image_url" validate:"required,url,max=500"`
	AfterImageURL     string `json:"after_image_url" validate:"required,url,max=500"`
	PatientAge        *int   `json:"patient_age" validate:"omitempty,min=1,max=120"`
	TreatmentDuration string `json:"treatment_duration" validate:"omitempty,max=100"`
	IsFeatured        bool   `json:"is_featured"`
	DisplayOrder      int    `json:"display_order" validate:"omitempty,min=0"`
}

type UpdateGalleryItemRequest struct {
	Title             *string `json:"title" validate:"omitempty,max=200"`
	Description       *string `json:"description"`
	TreatmentType     *string `json:"treatment_type" validate:"omitempty,oneof=whitening veneers implants orthodontics cosmetic other"`
	BeforeImageURL    *string `json:"before_image_url" validate:"omitempty,url,max=500"`
	AfterImageURL     *string `json:"after_image_url" validate:"omitempty,url,max=500"`
	PatientAge        *int    `json:"patient_age" validate:"omitempty,min=1,max=120"`
	TreatmentDuration *string `json:"treatment_duration" validate:"omitempty,max=100"`
	IsFeatured        *bool   `json:"is_featured"`
	IsActive          *bool   `json:"is_active"`
	DisplayOrder      *int    `json:"display_order" validate:"omitempty,min=0"`
}

// GalleryFilters narrows gallery listings; zero values mean "no filter".
type GalleryFilters struct {
	TreatmentType string `form:"treatment_type"`
	FeaturedOnly  bool   `form:"featured"`
	ActiveOnly    bool   `form:"active"`
}
