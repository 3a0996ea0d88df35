package auth

import (
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/desertthunder/cook/internal/shared"
	validator "github.com/go-playground/validator/v10"
)

// Form field names. Errors are keyed by these.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldFirstName       = "firstName"
	FieldLastName        = "lastName"
	FieldPhone           = "phoneNumber"
)

const MinPasswordLength = 8

var phonePattern = regexp.MustCompile(`^\+?[\d\s-]{10,}$`)

// messages maps "field.tag" to the message shown under the field.
var messages = map[string]string{
	FieldEmail + ".required":          "Email is required",
	FieldEmail + ".email":             "Invalid email address",
	FieldPassword + ".min":            "Password must be at least 8 characters",
	FieldConfirmPassword + ".min":     "Password must be at least 8 characters",
	FieldConfirmPassword + ".eqfield": "Passwords don't match",
	FieldFirstName + ".required":      "First name is required",
	FieldLastName + ".required":       "Last name is required",
	FieldPhone + ".phone":             "Invalid phone number",
}

// LoginForm is the login form as typed by the user.
type LoginForm struct {
	Email    string `form:"email" validate:"required,email"`
	Password string `form:"password" validate:"min=8"`
}

// RegisterForm is the registration form as typed by the user. Address fields and Age are optional.
type RegisterForm struct {
	FirstName       string `form:"firstName" validate:"required"`
	LastName        string `form:"lastName" validate:"required"`
	Email           string `form:"email" validate:"required,email"`
	Phone           string `form:"phoneNumber" validate:"phone"`
	Password        string `form:"password" validate:"min=8"`
	ConfirmPassword string `form:"confirmPassword" validate:"min=8,eqfield=Password"`
	Address         string `form:"address"`
	City            string `form:"city"`
	State           string `form:"state"`
	Zip             string `form:"zip"`
	Country         string `form:"country"`
	Age             int    `form:"age"`
}

// ValidationError lists the fields that failed local validation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return shared.ErrInvalidInput
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := shared.NewValidator()
	v.RegisterTagNameFunc(formName)
	if err := v.RegisterValidation("phone", validatePhone); err != nil {
		panic(err)
	}
	return v
}

func formName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

func validatePhone(fieldLevel validator.FieldLevel) bool {
	return phonePattern.MatchString(fieldLevel.Field().String())
}

// Validate checks form (a [LoginForm] or [RegisterForm]) and returns a [*ValidationError] or nil.
func Validate(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationError{Fields: make(map[string]string, len(fieldErrs))}
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "Invalid " + fe.Field()
		}
		out.Fields[fe.Field()] = msg
	}
	return out
}
