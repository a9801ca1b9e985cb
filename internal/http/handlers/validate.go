package handlers

import (
	"errors"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

const maxMatchIDLength = 64

var (
	errMatchIDRequired = errors.New("match id is required")
	errMatchIDInvalid  = errors.New("invalid match id")
)

var validate = newValidator()

type matchQuery struct {
	ID string `validate:"required,max=64,matchid"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("matchid", func(fl validator.FieldLevel) bool {
		return !strings.ContainsFunc(fl.Field().String(), func(r rune) bool {
			return unicode.IsSpace(r) || r == '/'
		})
	})
	return v
}

// validateMatchID reports whether id can be passed to the fetch layer.
func validateMatchID(id string) error {
	if err := validate.Struct(matchQuery{ID: id}); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 && verrs[0].Tag() == "required" {
			return errMatchIDRequired
		}
		return errMatchIDInvalid
	}
	return nil
}
