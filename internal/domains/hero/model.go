package hero

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// HeroImage is a homepage carousel slide managed directly by the
// backend rather than the CMS. IDs are small sequential ints assigned
// by the repository.
type HeroImage struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	ImageURL    string    `json:"imageUrl"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateHeroImageRequest is the POST payload.
type CreateHeroImageRequest struct {
	Name        string `json:"name"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

func (r CreateHeroImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 150),
		),
		validation.Field(&r.ImageURL,
			validation.Required.Error("imageUrl is required"),
			is.URL.Error("imageUrl must be a valid URL"),
		),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}

// UpdateHeroImageRequest is the PUT payload. Nil fields are left
// untouched (partial update).
type UpdateHeroImageRequest struct {
	Name        *string `json:"name"`
	ImageURL    *string `json:"imageUrl"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

func (r UpdateHeroImageRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.NilOrNotEmpty, validation.Length(2, 150)),
		validation.Field(&r.ImageURL, validation.NilOrNotEmpty, is.URL.Error("imageUrl must be a valid URL")),
		validation.Field(&r.Description, validation.Length(0, 500)),
	)
}
