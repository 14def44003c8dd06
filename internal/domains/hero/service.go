package hero

import "context"

// Service applies validation on top of the repository.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]HeroImage, error) {
	return s.repo.List(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int) (*HeroImage, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateHeroImageRequest) (*HeroImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// New slides default to active unless the caller says otherwise.
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return s.repo.Create(ctx, HeroImage{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Description: req.Description,
		IsActive:    active,
	})
}

func (s *Service) Update(ctx context.Context, id int, req UpdateHeroImageRequest) (*HeroImage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

func (s *Service) Delete(ctx context.Context, id int) error {
	return s.repo.Delete(ctx, id)
}
