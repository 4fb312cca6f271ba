package validation

import (
	"strings"

	"github.com/dmitrijs2005/snapfeed/internal/client/models"
)

type FieldError struct {
	Field   string
	Message string
}

// FieldErrors lists every failing field of one form, in form order.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	lines := make([]string, 0, len(fe))
	for _, e := range fe {
		lines = append(lines, e.Field+": "+e.Message)
	}
	return strings.Join(lines, "\n")
}

// Has reports whether field failed.
func (fe FieldErrors) Has(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

func (fe *FieldErrors) check(field string, err error) {
	if err != nil {
		*fe = append(*fe, FieldError{Field: field, Message: err.Error()})
	}
}

func (fe FieldErrors) orNil() error {
	if len(fe) == 0 {
		return nil
	}
	return fe
}

// ValidateSignIn returns nil or a FieldErrors.
func ValidateSignIn(c models.Credentials) error {
	var fe FieldErrors
	fe.check("email", ValidateEmail(c.Email))
	fe.check("password", ValidatePassword(c.Password))
	return fe.orNil()
}

// ValidateSignUp returns nil or a FieldErrors.
func ValidateSignUp(f models.SignUpForm) error {
	var fe FieldErrors
	fe.check("name", ValidateName(f.Name))
	fe.check("lastName", ValidateName(f.LastName))
	fe.check("nickname", ValidateName(f.Nickname))
	fe.check("email", ValidateEmail(f.Email))
	fe.check("password", ValidatePassword(f.Password))
	return fe.orNil()
}
