package service

import (
	"errors"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	tagRequired       = "required"
	tagEqualField     = "eqfield"
	tagEmail          = "storefront_email"
	tagStrongPassword = "strong_password"

	minPasswordLength = 8
	lineTerminators   = "\n\r\u2028\u2029"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// tagPriority orders form failures, the failing rule with the lowest priority gives the message.
var tagPriority = map[string]int{
	tagRequired:       0,
	tagEqualField:     1,
	tagEmail:          2,
	tagStrongPassword: 3,
}

type (
	LoginForm struct {
		Email    string `validate:"required,storefront_email"`
		Password string `validate:"required,strong_password"`
	}

	RegisterForm struct {
		Username        string `validate:"required"`
		Email           string `validate:"required,storefront_email"`
		Password        string `validate:"required,strong_password"`
		ConfirmPassword string `validate:"required,eqfield=Password"`
	}
)

type formValidator struct {
	impl     *validator.Validate
	messages Messages
}

func newFormValidator(messages Messages) formValidator {
	impl := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(impl, tagEmail, func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(impl, tagStrongPassword, func(fl validator.FieldLevel) bool {
		return isStrongPassword(fl.Field().String())
	})

	return formValidator{
		impl:     impl,
		messages: messages,
	}
}

// Validate returns *FormError with the message of the highest priority failure.
func (v formValidator) Validate(form any) error {
	err := v.impl.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}

	failed := fieldErrs[0].Tag()
	for _, fieldErr := range fieldErrs[1:] {
		if tagPriority[fieldErr.Tag()] < tagPriority[failed] {
			failed = fieldErr.Tag()
		}
	}

	return &FormError{Message: v.message(failed)}
}

func (v formValidator) message(tag string) string {
	switch tag {
	case tagEqualField:
		return v.messages.PasswordMismatch
	case tagEmail:
		return v.messages.InvalidEmail
	case tagStrongPassword:
		return v.messages.WeakPassword
	default:
		return v.messages.FillAllFields
	}
}

// isStrongPassword requires a single line, line terminators never count as password characters.
func isStrongPassword(password string) bool {
	if strings.ContainsAny(password, lineTerminators) {
		return false
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	var hasLower, hasUpper bool
	for _, r := range password {
		hasLower = hasLower || (r <= unicode.MaxASCII && unicode.IsLower(r))
		hasUpper = hasUpper || (r <= unicode.MaxASCII && unicode.IsUpper(r))
	}

	return hasLower && hasUpper
}

func mustRegister(impl *validator.Validate, tag string, fn validator.Func) {
	err := impl.RegisterValidation(tag, fn)
	if err != nil {
		panic(err)
	}
}
