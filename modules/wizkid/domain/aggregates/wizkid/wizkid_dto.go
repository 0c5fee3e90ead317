package wizkid

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/owow-nl/wizkid-manager/pkg/constants"
)

// UpdateDTO carries the editable fields of a wizkid. The fired flag is
// deliberately absent; it only changes through the fire/rehire flow.
type UpdateDTO struct {
	Name      string `form:"Name" validate:"required"`
	Role      string `form:"Role" validate:"required"`
	BirthDate string `form:"BirthDate" validate:"required"`
	Email     string `form:"Email" validate:"omitempty,email"`
	Phone     string `form:"Phone"`
}

func (d *UpdateDTO) Normalize() {
	d.Name = strings.TrimSpace(d.Name)
	d.Role = strings.TrimSpace(d.Role)
	d.Email = strings.TrimSpace(d.Email)
	d.Phone = strings.TrimSpace(d.Phone)
}

func (d *UpdateDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Normalize()

	errors := map[string]string{}
	if errs := constants.Validate.Struct(d); errs != nil {
		for _, err := range errs.(validator.ValidationErrors) {
			errors[err.Field()] = validationMessage(err)
		}
	}
	if d.Role != "" && !Role(d.Role).IsValid() {
		errors["Role"] = "Unknown role"
	}
	if d.BirthDate != "" {
		if _, err := time.Parse("2006-01-02", d.BirthDate); err != nil {
			errors["BirthDate"] = "Birth date must be YYYY-MM-DD"
		}
	}
	return errors, len(errors) == 0
}

// Apply copies the validated fields onto the record. Ok must have
// returned true first.
func (d *UpdateDTO) Apply(w Wizkid) Wizkid {
	birthDate, _ := time.Parse("2006-01-02", d.BirthDate)
	return w.
		WithName(d.Name).
		WithRole(Role(d.Role)).
		WithBirthDate(birthDate).
		WithEmail(d.Email).
		WithPhone(d.Phone)
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	default:
		return "Invalid value"
	}
}
