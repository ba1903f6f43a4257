package blog

import (
	"context"

	"github.com/google/uuid"

	"github.com/futuresmile/clinic-api/internal/model"
	"github.com/futuresmile/clinic-api/internal/repository"
)

type Service struct {
	repo repository.BlogPostRepository
}

func NewService(repo repository.BlogPostRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req *model.CreateBlogPostRequest) (*model.BlogPost, error) {
	post := &model.BlogPost{
		Title:    req.Title,
		Excerpt:  req.Excerpt,
		Content:  req.Content,
		ImageURL: req.ImageURL,
		Category: req.Category,
		Author:   req.Author,
		ReadTime: req.ReadTime,
		// New posts go live immediately; unpublishing is an explicit
		// update.
		IsPublished: true,
	}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*model.BlogPost, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req *model.UpdateBlogPostRequest) (*model.BlogPost, error) {
	post, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.ImageURL != nil {
		post.ImageURL = *req.ImageURL
	}
	if req.Category != nil {
		post.Category = *req.Category
	}
	if req.Author != nil {
		post.Author = *req.Author
	}
	if req.ReadTime != nil {
		post.ReadTime = *req.ReadTime
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) List(ctx context.Context, filters *model.BlogPostFilters) ([]*model.BlogPost, error) {
	return s.repo.List(ctx, filters)
}
