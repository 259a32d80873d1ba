package genre

import (
	"context"
	"fmt"
	"time"

	"github.com/revuhq/revu/pkg/pagination"
	"github.com/revuhq/revu/pkg/slug"
	"github.com/revuhq/revu/pkg/uuidv7"
)

type Service struct {
	repository Repository
}

func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

func (s *Service) List(ctx context.Context, search string, params pagination.Params) ([]Genre, int, error) {
	genres, total, err := s.repository.List(ctx, search, params)
	if err != nil {
		return nil, 0, fmt.Errorf("genre_service_list_failed: %w", err)
	}
	return genres, total, nil
}

func (s *Service) Create(ctx context.Context, name, slugValue string) (*Genre, error) {
	if slugValue == "" {
		slugValue = slug.From(name)
	}

	g := &Genre{
		ID:        uuidv7.New(),
		Name:      name,
		Slug:      slugValue,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repository.Create(ctx, g); err != nil {
		return nil, fmt.Errorf("genre_service_create_failed: %w", err)
	}
	return g, nil
}

func (s *Service) Delete(ctx context.Context, slugValue string) error {
	if err := s.repository.DeleteBySlug(ctx, slugValue); err != nil {
		return fmt.Errorf("genre_service_delete_failed: %w", err)
	}
	return nil
}
