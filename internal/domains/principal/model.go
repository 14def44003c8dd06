package principal

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Message is the principal's welcome message shown on the school
// homepage. The collection is a singleton by convention: reads return
// the first record in insertion order, but the CRUD surface is kept
// uniform with hero images. HeroImageID optionally links the message
// to a hero image record for the homepage layout.
type Message struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	HeroImageID *int      `json:"heroImageId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateMessageRequest is the POST payload.
type CreateMessageRequest struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	HeroImageID *int   `json:"heroImageId"`
}

func (r CreateMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(2, 200),
		),
		validation.Field(&r.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 10000),
		),
		validation.Field(&r.HeroImageID, validation.Min(1)),
	)
}

// UpdateMessageRequest is the PUT payload, partial-update semantics.
type UpdateMessageRequest struct {
	Name        *string `json:"name"`
	Title       *string `json:"title"`
	Message     *string `json:"message"`
	HeroImageID *int    `json:"heroImageId"`
}

func (r UpdateMessageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 100)),
		validation.Field(&r.Title, validation.NilOrNotEmpty, validation.Length(2, 200)),
		validation.Field(&r.Message, validation.NilOrNotEmpty, validation.Length(10, 10000)),
		validation.Field(&r.HeroImageID, validation.Min(1)),
	)
}
