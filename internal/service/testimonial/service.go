package testimonial

import (
	"context"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
)

type Service struct {
	repo repository.TestimonialRepository
}

func NewService(repo repository.TestimonialRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateTestimonialRequest) (*model.Testimonial, error) {
	t := &model.Testimonial{
		PatientName: req.PatientName,
		ServiceName: req.ServiceName,
		Rating:      req.Rating,
		Comment:     req.Comment,
		// New testimonials stay hidden until an admin activates them.
		IsActive: false,
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Testimonial, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateTestimonialRequest) (*model.Testimonial, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Rating != nil {
		t.Rating = *req.Rating
	}
	if req.Comment != nil {
		t.Comment = *req.Comment
	}
	if req.IsActive != nil {
		t.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*model.Testimonial, error) {
	return s.repo.List(ctx, activeOnly)
}
