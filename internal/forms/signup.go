// Package forms holds client-side form validation. Validation failures are
// surfaced inline and the backend is never contacted for them.
package forms

import (
	"errors"
	"strings"
	"unicode"
)

// Signup is the registration form.
type Signup struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// Validate checks the form with the same rules the signup page applies:
// all fields required, a plausible email and phone, password of at least 8
// characters with an uppercase letter and a digit, and a matching
// confirmation. The first violated rule is returned.
func (f Signup) Validate() error {
	if f.FirstName == "" || f.LastName == "" || f.Email == "" || f.Phone == "" || f.Password == "" {
		return errors.New("Veuillez remplir tous les champs obligatoires")
	}
	if !looksLikeEmail(f.Email) {
		return errors.New("Veuillez entrer une adresse email valide")
	}
	if !looksLikePhone(f.Phone) {
		return errors.New("Veuillez entrer un numéro de téléphone valide")
	}
	if len(f.Password) < 8 {
		return errors.New("Le mot de passe doit contenir au moins 8 caractères")
	}
	if !containsFunc(f.Password, unicode.IsUpper) {
		return errors.New("Le mot de passe doit contenir au moins une majuscule")
	}
	if !containsFunc(f.Password, unicode.IsDigit) {
		return errors.New("Le mot de passe doit contenir au moins un chiffre")
	}
	if f.Password != f.ConfirmPassword {
		return errors.New("Les mots de passe ne correspondent pas")
	}
	return nil
}

func looksLikeEmail(s string) bool {
	at := strings.Index(s, "@")
	if at < 1 {
		return false
	}
	rest := s[at+1:]
	dot := strings.Index(rest, ".")
	return dot > 0 && dot < len(rest)-1
}

func looksLikePhone(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' || r == ' ' || r == '-':
		default:
			return false
		}
	}
	return digits >= 8
}

func containsFunc(s string, fn func(rune) bool) bool {
	for _, r := range s {
		if fn(r) {
			return true
		}
	}
	return false
}
