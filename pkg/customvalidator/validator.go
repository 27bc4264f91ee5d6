package customvalidator

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	permissionCodeRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	usernameRe       = regexp.MustCompile(`^[A-Za-z0-9._@-]+$`)
)

// RegisterCustomValidations registers the console's custom rules on v.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("permission_code", isPermissionCode); err != nil {
		return err
	}
	if err := v.RegisterValidation("username", isUsername); err != nil {
		return err
	}
	return nil
}

// New returns a validator with the custom rules already registered.
func New() *validator.Validate {
	v := validator.New()
	if err := RegisterCustomValidations(v); err != nil {
		panic(err)
	}
	return v
}

// IsPermissionCode reports whether s looks like ASSIGNMENT_VIEW.
func IsPermissionCode(s string) bool {
	return permissionCodeRe.MatchString(s)
}

func isPermissionCode(fl validator.FieldLevel) bool {
	return IsPermissionCode(fl.Field().String())
}

func isUsername(fl validator.FieldLevel) bool {
	return usernameRe.MatchString(fl.Field().String())
}

// EchoValidator adapts a validator to echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

func NewEchoValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (cv *EchoValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
