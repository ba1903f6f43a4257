// Package catalog manages the clinic's service offerings.
package catalog

import (
	"context"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
	apperrors "github.com/futuresmile/clinic-api/pkg/errors"
)

type Service struct {
	repo repository.ServiceRepository
}

func NewService(repo repository.ServiceRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	if req.PriceMax < req.PriceMin {
		return nil, apperrors.BadRequest("price_max must not be below price_min", nil)
	}

	svc := &model.Service{
		Name:        req.Name,
		Description: req.Description,
		PriceMin:    req.PriceMin,
		PriceMax:    req.PriceMax,
		Duration:    req.Duration,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.PriceMin != nil {
		svc.PriceMin = *req.PriceMin
	}
	if req.PriceMax != nil {
		svc.PriceMax = *req.PriceMax
	}
	if req.Duration != nil {
		svc.Duration = *req.Duration
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if svc.PriceMax < svc.PriceMin {
		return nil, apperrors.BadRequest("price_max must not be below price_min", nil)
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]*model.Service, error) {
	return s.repo.List(ctx, activeOnly)
}
