package model

type BlogPost struct {
	Base
	Title       string `db:"title" json:"title"`
	Excerpt     string `db:"excerpt" json:"excerpt"`
	Content     string `db:"content" json:"content"`
	ImageURL    string `db:"image_url" json:"image_url"`
	Category    string `db:"category" json:"category"`
	Author      string `db:"author" json:"author"`
	ReadTime    string `db:"read_time" json:"read_time"`
	IsPublished bool   `db:"is_published" json:"is_published"`
}

type CreateBlogPostRequest struct {
	Title    string `json:"title" validate:"required,max=300"`
	Excerpt  string `json:"excerpt" validate:"required"`
	Content  string `json:"content" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=500"`
	Category string `json:"category" validate:"required,max=100"`
	Author   string `json:"author" validate:"required,max=200"`
	ReadTime string `json:"read_time" validate:"omitempty,max=50"`
}

type UpdateBlogPostRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=300"`
	Excerpt     *string `json:"excerpt"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
	Category    *string `json:"category" validate:"omitempty,max=100"`
	Author      *string `json:"author" validate:"omitempty,max=200"`
	ReadTime    *string `json:"read_time" validate:"omitempty,max=50"`
	IsPublished *bool   `json:"is_published"`
}

// BlogPostFilters narrows blog listings; zero values mean "no filter".
type BlogPostFilters struct {
	Category      string `form:"category"`
	Search        string `form:"search"`
	PublishedOnly bool   `form:"published"`
}
