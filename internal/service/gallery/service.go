package gallery

import (
	"context"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
)

type Service struct {
	repo repository.GalleryRepository
}

func NewService(repo repository.GalleryRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateGalleryItemRequest) (*model.GalleryItem, error) {
	item := &model.GalleryItem{
		Title:             req.Title,
		Description:       req.Description,
		TreatmentType:     req.TreatmentType,
		BeforeImageURL:    req.BeforeImageURL,
		AfterImageURL:     req.AfterImageURL,
		PatientAge:        req.PatientAge,
		TreatmentDuration: req.TreatmentDuration,
		IsFeatured:        req.IsFeatured,
		IsActive:          true,
		DisplayOrder:      req.DisplayOrder,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.GalleryItem, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateGalleryItemRequest) (*model.GalleryItem, error) {
	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.TreatmentType != nil {
		item.TreatmentType = *req.TreatmentType
	}
	if req.BeforeImageURL != nil {
		item.BeforeImageURL = *req.BeforeImageURL
	}
	if req.AfterImageURL != nil {
		item.AfterImageURL = *req.AfterImageURL
	}
	if req.PatientAge != nil {
		item.PatientAge = req.PatientAge
	}
	if req.TreatmentDuration != nil {
		item.TreatmentDuration = *req.TreatmentDuration
	}
	if req.IsFeatured != nil {
		item.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}
	if req.DisplayOrder != nil {
		item.DisplayOrder = *req.DisplayOrder
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.GalleryFilters) ([]*model.GalleryItem, error) {
	return s.repo.List(ctx, filters)
}
