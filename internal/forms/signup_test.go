package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validForm() Signup {
	return Signup{
		FirstName:       "Jean",
		LastName:        "Dupont",
		Email:           "jean@citefix.bj",
		Phone:           "+229 97 00 00 00",
		Password:        "Password1",
		ConfirmPassword: "Password1",
	}
}

func TestSignupValidation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Signup)
		wantErr string
	}{
		{"valid", func(f *Signup) {}, ""},
		{"missing first name", func(f *Signup) { f.FirstName = "" }, "champs obligatoires"},
		{"missing phone", func(f *Signup) { f.Phone = "" }, "champs obligatoires"},
		{"bad email", func(f *Signup) { f.Email = "jean-at-citefix" }, "email valide"},
		{"bad phone", func(f *Signup) { f.Phone = "pas-un-numero" }, "téléphone valide"},
		{"short password", func(f *Signup) { f.Password, f.ConfirmPassword = "Ab1", "Ab1" }, "au moins 8 caractères"},
		{"no uppercase", func(f *Signup) { f.Password, f.ConfirmPassword = "password1", "password1" }, "majuscule"},
		{"no digit", func(f *Signup) { f.Password, f.ConfirmPassword = "Passwordx", "Passwordx" }, "chiffre"},
		{"mismatch", func(f *Signup) { f.ConfirmPassword = "Password2" }, "ne correspondent pas"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			err := form.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
