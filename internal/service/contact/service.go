package contact

import (
	"context"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
)

type Service struct {
	repo repository.ContactMessageRepository
}

func NewService(repo repository.ContactMessageRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateContactMessageRequest) (*model.ContactMessage, error) {
	m := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.ContactMessage, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, unreadOnly bool) ([]*model.ContactMessage, error) {
	return s.repo.List(ctx, unreadOnly)
}
