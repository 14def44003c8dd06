package principal

import (
	"context"
	"sync"
	"time"
)

// Repository defines data access for principal messages.
type Repository interface {
	List(ctx context.Context) ([]Message, error)
	First(ctx context.Context) (*Message, error)
	GetByID(ctx context.Context, id int) (*Message, error)
	Create(ctx context.Context, msg Message) (*Message, error)
	Update(ctx context.Context, id int, req UpdateMessageRequest) (*Message, error)
	Delete(ctx context.Context, id int) error
}

// MemoryRepository keeps messages in process memory, seeded with one
// default record. Insertion order decides which record counts as "the"
// message on the public read path.
type MemoryRepository struct {
	mu     sync.RWMutex
	byID   map[int]*Message
	order  []int
	nextID int
	now    func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	r := &MemoryRepository{
		byID:   make(map[int]*Message),
		nextID: 1,
		now:    time.Now,
	}
	r.insert(Message{
		Name:    "Dr. Evelyn Hart",
		Title:   "A Word from the Principal",
		Message: "Welcome to our school. We believe every child deserves a place where curiosity is encouraged and effort is celebrated.",
	})
	return r
}

func (r *MemoryRepository) insert(msg Message) *Message {
	now := r.now().UTC()
	msg.ID = r.nextID
	msg.CreatedAt = now
	msg.UpdatedAt = now
	r.nextID++

	r.byID[msg.ID] = &msg
	r.order = append(r.order, msg.ID)
	return &msg
}

func (r *MemoryRepository) List(ctx context.Context) ([]Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Message, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, *r.byID[id])
	}
	return out, nil
}

// First returns the oldest surviving record, or ErrNotFound when the
// store is empty.
func (r *MemoryRepository) First(ctx context.Context) (*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return nil, ErrNotFound
	}
	copied := *r.byID[r.order[0]]
	return &copied, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id int) (*Message, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *msg
	return &copied, nil
}

func (r *MemoryRepository) Create(ctx context.Context, msg Message) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := r.insert(msg)
	copied := *created
	return &copied, nil
}

func (r *MemoryRepository) Update(ctx context.Context, id int, req UpdateMessageRequest) (*Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	msg, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if req.Name != nil {
		msg.Name = *req.Name
	}
	if req.Title != nil {
		msg.Title = *req.Title
	}
	if req.Message != nil {
		msg.Message = *req.Message
	}
	if req.HeroImageID != nil {
		msg.HeroImageID = req.HeroImageID
	}
	msg.UpdatedAt = r.now().UTC()

	copied := *msg
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
