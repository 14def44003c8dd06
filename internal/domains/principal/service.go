package principal

import (
	"context"
	"errors"
)

// Service applies validation on top of the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Message, error) {
	return s.repo.List(ctx)
}

// Current returns the message the public site should display. A nil
// message with nil error means the store is empty, which is not a
// failure on the read path.
func (s *Service) Current(ctx context.Context) (*Message, error) {
	msg, err := s.repo.First(ctx)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return msg, err
}

func (s *Service) GetByID(ctx context.Context, id int) (*Message, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, Message{
		Name:        req.Name,
		Title:       req.Title,
		Message:     req.Message,
		HeroImageID: req.HeroImageID,
	})
}

func (s *Service) Update(ctx context.Context, id int, req UpdateMessageRequest) (*Message, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
