package hero

import (
	"context"
	"sync"
	"time"
)

// Repository defines data access for hero images.
type Repository interface {
	List(ctx context.Context) ([]HeroImage, error)
	GetByID(ctx context.Context, id int) (*HeroImage, error)
	Create(ctx context.Context, img HeroImage) (*HeroImage, error)
	Update(ctx context.Context, id int, req UpdateHeroImageRequest) (*HeroImage, error)
	Delete(ctx context.Context, id int) error
}

// MemoryRepository keeps hero images in process memory. Records do not
// survive a restart; the seed set is loaded on construction. Insertion
// order is preserved for listing.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int]*HeroImage
	order  []int
	nextID int
	now    func() time.Time
}

// NewMemoryRepository creates a repository pre-loaded with the default
// seed slides.
func NewMemoryRepository() *MemoryRepository {
	r := &MemoryRepository{
		byID:   make(map[int]*HeroImage),
		nextID: 1,
		now:    time.Now,
	}
	r.seed()
	return r
}

func (r *MemoryRepository) seed() {
	seeds := []HeroImage{
		{
			Name:        "Welcome to Our School",
			ImageURL:    "https://images.unsplash.com/photo-1580582932707-520aed937b7b?w=1600",
			Description: "A vibrant learning community for every child",
			IsActive:    true,
		},
		{
			Name:        "Science Fair 2025",
			ImageURL:    "https://images.unsplash.com/photo-1564981797816-1043664bf78d?w=1600",
			Description: "Students presenting their annual science projects",
			IsActive:    true,
		},
		{
			Name:        "Sports Day",
			ImageURL:    "https://images.unsplash.com/photo-1461896836934-ffe607ba8211?w=1600",
			Description: "Teamwork and spirit on the field",
			IsActive:    false,
		},
	}
	for _, s := range seeds {
		r.insert(s)
	}
}

// insert assigns an ID and timestamps. Caller must hold the lock or be
// the constructor.
func (r *MemoryRepository) insert(img HeroImage) *HeroImage {
	now := r.now().UTC()
	img.ID = r.nextID
	img.CreatedAt = now
	img.UpdatedAt = now
	r.nextID++

	r.byID[img.ID] = &img
	r.order = append(r.order, img.ID)
	return &img
}

func (r *MemoryRepository) List(ctx context.Context) ([]HeroImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]HeroImage, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int) (*HeroImage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	img, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *img
	return &copied, nil
}

func (r *MemoryRepository) Create(ctx context.Context, img HeroImage) (*HeroImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.insert(img)
	copied := *created
	return &copied, nil
}

// Update merges non-nil fields into the stored record and bumps
// UpdatedAt. CreatedAt and ID never change.
func (r *MemoryRepository) Update(ctx context.Context, id int, req UpdateHeroImageRequest) (*HeroImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	img, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		img.Name = *req.Name
	}
	if req.ImageURL != nil {
		img.ImageURL = *req.ImageURL
	}
	if req.Description != nil {
		img.Description = *req.Description
	}
	if req.IsActive != nil {
		img.IsActive = *req.IsActive
	}
	img.UpdatedAt = r.now().UTC()

	copied := *img
	return &copied, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}
