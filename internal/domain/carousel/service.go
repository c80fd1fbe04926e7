package carousel

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all carousel images, newest first.
func (s *Service) List(ctx context.Context) ([]Image, error) {
	return s.repo.List(ctx)
}

func (s *Service) Add(ctx context.Context, url, title string) (*Image, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	image := &Image{
		ID:    uuid.NewString(),
		URL:   url,
		Title: strings.TrimSpace(title),
	}
	if err := s.repo.Create(ctx, image); err != nil {
		return nil, err
	}
	return image, nil
}

func (s *Service) Remove(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
