package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/citefix/citefix-cli/internal/api"
	"github.com/citefix/citefix-cli/internal/forms"
)

func (a *app) handleAuth(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix auth <login|logout|signup|whoami|refresh>")
		return nil
	}

	switch args[0] {
	case "login":
		return a.authLogin(ctx, args[1:])
	case "logout":
		return a.authLogout(ctx)
	case "signup":
		return a.authSignup(ctx, args[1:])
	case "whoami":
		return a.authWhoAmI(ctx)
	case "refresh":
		return a.authRefresh(ctx)
	default:
		return fmt.Errorf("unknown auth command: %s", args[0])
	}
}

func (a *app) authLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "adresse email")
	password := fs.String("password", "", "mot de passe")
	fs.Parse(args)

	if *email == "" || *password == "" {
		fmt.Fprintln(a.out, "Error: email and password are required")
		fs.PrintDefaults()
		return flag.ErrHelp
	}

	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	return a.session.Login(ctx, *email, *password)
}

func (a *app) authLogout(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	a.session.Logout()
	return nil
}

func (a *app) authSignup(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("signup", flag.ExitOnError)
	firstName := fs.String("first-name", "", "prénom")
	lastName := fs.String("last-name", "", "nom")
	email := fs.String("email", "", "adresse email")
	phone := fs.String("phone", "", "numéro de téléphone")
	password := fs.String("password", "", "mot de passe")
	confirm := fs.String("confirm-password", "", "confirmation du mot de passe")
	fs.Parse(args)

	form := forms.Signup{
		FirstName:       *firstName,
		LastName:        *lastName,
		Email:           *email,
		Phone:           *phone,
		Password:        *password,
		ConfirmPassword: *confirm,
	}
	// Form errors stay local: the backend is not contacted for them.
	if err := form.Validate(); err != nil {
		a.notifier.Error("Erreur", err.Error())
		return err
	}

	user, err := a.client.Signup(ctx, api.SignupRequest{
		Email:     form.Email,
		Password:  form.Password,
		LastName:  form.LastName,
		FirstName: form.FirstName,
		Phone:     form.Phone,
	})
	if err != nil {
		a.notifier.Error("Erreur lors de l'inscription", api.UserMessage(err, "Impossible de créer le compte"))
		return err
	}

	a.notifier.Success("Compte créé avec succès", "Bienvenue, "+user.FirstName+" ! Vous pouvez maintenant vous connecter.")
	return nil
}

func (a *app) authWhoAmI(ctx context.Context) error {
	if err := a.session.Initialize(ctx); err != nil {
		return err
	}
	user := a.session.CurrentUser()
	if user == nil {
		fmt.Fprintln(a.out, "Non connecté")
		return nil
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", user.ID)
	fmt.Fprintf(w, "Nom\t%s\n", user.DisplayName())
	fmt.Fprintf(w, "Email\t%s\n", user.Email)
	fmt.Fprintf(w, "Rôle\t%s\n", user.Role)
	fmt.Fprintf(w, "Statut\t%s\n", user.Status)
	return w.Flush()
}

func (a *app) authRefresh(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if err := a.session.RefreshUser(ctx); err != nil {
		return err
	}
	return a.authWhoAmI(ctx)
}
