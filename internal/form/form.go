// Package form holds the validation schema of every screen. Each form is a
// plain struct whose Validate method returns ozzo validation.Errors keyed by
// JSON field name.
package form

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Messages shown under fields.
const (
	MsgNameRequired     = "Nome obrigatório"
	MsgEmailRequired    = "E-mail obrigatório"
	MsgEmailInvalid     = "Digite um e-mail válido"
	MsgPasswordRequired = "Senha obrigatória"
	MsgPasswordMin      = "No mínimo 6 dígitos"
	MsgFieldRequired    = "Campo obrigatório"
	MsgConfirmMismatch  = "Confirmação incorreta"
)

// MinPasswordLength is the shortest password accepted at sign-up.
const MinPasswordLength = 6

func emailRules() []validation.Rule {
	return []validation.Rule{
		validation.Required.Error(MsgEmailRequired),
		is.Email.Error(MsgEmailInvalid),
	}
}

// SignIn is the sign-in form.
type SignIn struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (f SignIn) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, validation.Required.Error(MsgPasswordRequired)),
	)
}

// SignUp is the account registration form.
type SignUp struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate will run validation rules
func (f SignUp) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password,
			validation.Required.Error(MsgPasswordMin),
			validation.Length(MinPasswordLength, 0).Error(MsgPasswordMin),
		),
	)
}

// ForgotPassword is the password recovery form.
type ForgotPassword struct {
	Email string `json:"email"`
}

// Validate will run validation rules
func (f ForgotPassword) Validate() error {
	f.Email = strings.TrimSpace(f.Email)
	return validation.ValidateStruct(&f,
		validation.Field(&f.Email, emailRules()...),
	)
}

// Profile is the profile edit form. The password fields only matter when
// OldPassword is filled in.
type Profile struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	OldPassword          string `json:"old_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// ChangesPassword reports whether the user asked for a password change.
func (f Profile) ChangesPassword() bool {
	return f.OldPassword != ""
}

// Validate will run validation rules
func (f Profile) Validate() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)

	var passwordRules, confirmRules []validation.Rule
	if f.ChangesPassword() {
		passwordRules = append(passwordRules, validation.Required.Error(MsgFieldRequired))
		confirmRules = append(confirmRules, validation.Required.Error(MsgFieldRequired))
	}
	confirmRules = append(confirmRules, validation.By(matches(f.Password)))

	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required.Error(MsgNameRequired)),
		validation.Field(&f.Email, emailRules()...),
		validation.Field(&f.Password, passwordRules...),
		validation.Field(&f.PasswordConfirmation, confirmRules...),
	)
}

// matches accepts an empty value or one equal to want.
func matches(want string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" || s == want {
			return nil
		}
		return errors.New(MsgConfirmMismatch)
	}
}

// FieldErrors flattens a validation error into field name to message. ok is
// false when err is not a validation error, in which case the caller should
// treat it as a failure of another kind.
func FieldErrors(err error) (fields map[string]string, ok bool) {
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	fields = make(map[string]string, len(verrs))
	for name, e := range verrs {
		if e != nil {
			fields[name] = e.Error()
		}
	}
	return fields, true
}
