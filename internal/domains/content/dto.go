package content

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ContactSubmission is the contact form payload forwarded to the CMS
// as {data: {...}}.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (s ContactSubmission) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name,
			validation.Required.Error("name is required"),
			validation.Length(2, 100),
		),
		validation.Field(&s.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&s.Subject,
			validation.Required.Error("subject is required"),
			validation.Length(2, 200),
		),
		validation.Field(&s.Message,
			validation.Required.Error("message is required"),
			validation.Length(10, 5000).Error("message must be 10-5000 characters"),
		),
	)
}
