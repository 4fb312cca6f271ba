package cli

import (
	"context"
	"errors"
	"time"

	"github.com/dmitrijs2005/snapfeed/internal/client/api"
	"github.com/dmitrijs2005/snapfeed/internal/client/models"
	"github.com/dmitrijs2005/snapfeed/internal/client/tokeninfo"
	"github.com/dmitrijs2005/snapfeed/internal/client/validation"
	"github.com/dmitrijs2005/snapfeed/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

const (
	signUpTitle = "Sign up failed"
	signInTitle = "Login failed"
)

// formError raises one alert for a form that failed validation.
func (a *App) formError(title string, err error) error {
	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		a.alerts.Alert(title, fe.Error())
	} else {
		a.alerts.Alert(title, err.Error())
	}
	return err
}

// SignUp prompts for the registration form, validates it and creates the
// account. The user signs in afterwards with login.
func (a *App) SignUp(ctx context.Context) error {
	var form models.SignUpForm

	prompts := []struct {
		label string
		dst   *string
	}{
		{"Enter first name", &form.Name},
		{"Enter last name", &form.LastName},
		{"Enter nickname", &form.Nickname},
		{"Enter email", &form.Email},
	}
	for _, p := range prompts {
		v, err := getSimpleText(a.reader, p.label, a.out)
		if err != nil {
			return err
		}
		*p.dst = v
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	form.Password = string(password)

	if err := validation.ValidateSignUp(form); err != nil {
		return a.formError(signUpTitle, err)
	}

	user, err := a.api.SignUp(ctx, form)
	if err != nil {
		a.log.Warn(ctx, "sign up failed", "email", form.Email, "error", err)
		a.alerts.Alert(signUpTitle, api.Message(err))
		return err
	}

	name := user.Display()
	if name == "" {
		name = form.Email
	}
	a.printf("Account created for %s. Use 'login' to sign in.\n", name)
	return nil
}

// Login prompts for credentials, validates them and signs in. On success the
// feed is shown. Failures are alerted by the session manager.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	creds := models.Credentials{Email: email, Password: string(password)}
	if err := validation.ValidateSignIn(creds); err != nil {
		return a.formError(signInTitle, err)
	}

	if err := a.session.Login(ctx, creds); err != nil {
		return err
	}

	u, _ := a.me()
	a.printf("Login successful, welcome %s!\n", u.Display())
	return a.Feed(ctx, nil)
}

// Logout signs out and forgets everything shown so far.
func (a *App) Logout(ctx context.Context) error {
	a.session.SignOut(ctx)
	a.setListing(nil, 0)
	a.printf("Logged out\n")
	return nil
}

// WhoAmI prints the signed-in user and what the token says about itself.
func (a *App) WhoAmI(ctx context.Context) error {
	s := a.session.Snapshot()
	a.printf("%s <%s>", s.User.Display(), s.User.Email())
	if id := s.User.ID(); id != "" {
		a.printf(" id=%s", id)
	}
	a.printf("\n")

	info, err := tokeninfo.Inspect(s.Token)
	if err != nil {
		a.printf("Token: opaque\n")
		return nil
	}
	if info.Subject != "" {
		a.printf("Token subject: %s\n", info.Subject)
	}
	switch {
	case info.ExpiresAt.IsZero():
		a.printf("Token never expires\n")
	case info.Expired(time.Now()):
		a.printf("Token expired at %s, please log in again\n", info.ExpiresAt.Format(time.RFC3339))
	default:
		a.printf("Token valid until %s\n", info.ExpiresAt.Format(time.RFC3339))
	}
	return nil
}
