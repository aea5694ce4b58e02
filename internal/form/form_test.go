package form

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignInValidate(t *testing.T) {
	tests := []struct {
		name string
		form SignIn
		want map[string]string
	}{
		{"valid", SignIn{Email: "johndoe@email.com", Password: "123456"}, nil},
		{"surrounding spaces", SignIn{Email: "  johndoe@email.com ", Password: "x"}, nil},
		{"empty", SignIn{}, map[string]string{"email": MsgEmailRequired, "password": MsgPasswordRequired}},
		{"invalid email", SignIn{Email: "not-valid-email", Password: "123456"}, map[string]string{"email": MsgEmailInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			fields, ok := FieldErrors(err)
			require.True(t, ok, "expected validation error, got %v", err)
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestSignUpValidate(t *testing.T) {
	tests := []struct {
		name string
		form SignUp
		want map[string]string
	}{
		{"valid", SignUp{Name: "John Doe", Email: "johndoe@email.com", Password: "123456"}, nil},
		{"short password", SignUp{Name: "John Doe", Email: "johndoe@email.com", Password: "12345"}, map[string]string{"password": MsgPasswordMin}},
		{"empty password", SignUp{Name: "John Doe", Email: "johndoe@email.com"}, map[string]string{"password": MsgPasswordMin}},
		{"blank name", SignUp{Name: "   ", Email: "johndoe@email.com", Password: "123456"}, map[string]string{"name": MsgNameRequired}},
		{"all wrong", SignUp{Email: "nope"}, map[string]string{"name": MsgNameRequired, "email": MsgEmailInvalid, "password": MsgPasswordMin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			fields, ok := FieldErrors(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestForgotPasswordValidate(t *testing.T) {
	require.NoError(t, ForgotPassword{Email: "johndoe@email.com"}.Validate())

	fields, ok := FieldErrors(ForgotPassword{}.Validate())
	require.True(t, ok)
	assert.Equal(t, map[string]string{"email": MsgEmailRequired}, fields)
}

func TestProfileValidate(t *testing.T) {
	base := Profile{Name: "John Doe", Email: "johndoe@email.com"}

	tests := []struct {
		name   string
		mutate func(p *Profile)
		want   map[string]string
	}{
		{"no password change", func(*Profile) {}, nil},
		{"full password change", func(p *Profile) {
			p.OldPassword, p.Password, p.PasswordConfirmation = "123456", "654321", "654321"
		}, nil},
		{"old password without new", func(p *Profile) {
			p.OldPassword = "123456"
		}, map[string]string{"password": MsgFieldRequired, "password_confirmation": MsgFieldRequired}},
		{"confirmation mismatch", func(p *Profile) {
			p.OldPassword, p.Password, p.PasswordConfirmation = "123456", "654321", "000000"
		}, map[string]string{"password_confirmation": MsgConfirmMismatch}},
		{"confirmation without old password", func(p *Profile) {
			p.PasswordConfirmation = "abc"
		}, map[string]string{"password_confirmation": MsgConfirmMismatch}},
		{"missing name and bad email", func(p *Profile) {
			p.Name, p.Email = "", "john"
		}, map[string]string{"name": MsgNameRequired, "email": MsgEmailInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := base
			tt.mutate(&p)
			err := p.Validate()
			if tt.want == nil {
				require.NoError(t, err)
				return
			}
			fields, ok := FieldErrors(err)
			require.True(t, ok)
			assert.Equal(t, tt.want, fields)
		})
	}
}

func TestFieldErrorsNonValidation(t *testing.T) {
	fields, ok := FieldErrors(errors.New("network down"))
	assert.False(t, ok)
	assert.Nil(t, fields)

	_, ok = FieldErrors(nil)
	assert.False(t, ok)
}
