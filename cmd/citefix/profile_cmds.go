package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/citefix/citefix-cli/internal/api"
)

func (a *app) handleProfile(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix profile <show|update>")
		return nil
	}

	switch args[0] {
	case "show":
		return a.profileShow(ctx)
	case "update":
		return a.profileUpdate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown profile command: %s", args[0])
	}
}

func (a *app) profileShow(ctx context.Context) error {
	if err := a.requireUser(ctx); err != nil {
		return err
	}
	if err := a.session.RefreshUser(ctx); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Impossible de rafraîchir le profil"))
		return err
	}

	user := a.session.CurrentUser()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", user.ID)
	fmt.Fprintf(w, "Nom\t%s\n", user.DisplayName())
	fmt.Fprintf(w, "Email\t%s\n", user.Email)
	if user.Phone != "" {
		fmt.Fprintf(w, "Téléphone\t%s\n", user.Phone)
	}
	fmt.Fprintf(w, "Rôle\t%s\n", user.Role)
	fmt.Fprintf(w, "Statut\t%s\n", user.Status)
	return w.Flush()
}

func (a *app) profileUpdate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("update", flag.ExitOnError)
	firstName := fs.String("first-name", "", "prénom")
	lastName := fs.String("last-name", "", "nom de famille")
	phone := fs.String("phone", "", "numéro de téléphone")
	email := fs.String("email", "", "adresse email")
	fs.Parse(args)

	if err := a.requireUser(ctx); err != nil {
		return err
	}

	update := api.UserUpdate{
		FirstName: *firstName,
		LastName:  *lastName,
		Phone:     *phone,
		Email:     *email,
	}
	if update == (api.UserUpdate{}) {
		a.notifier.Error("Erreur", "Aucun champ à mettre à jour")
		return fmt.Errorf("no fields to update")
	}

	user := a.session.CurrentUser()
	if _, err := a.client.UpdateUser(ctx, user.ID, update); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors de la mise à jour du profil"))
		return err
	}

	// Pull the saved profile back through the session so the stored copy
	// matches what the backend now holds.
	if err := a.session.RefreshUser(ctx); err != nil {
		return err
	}
	a.notifier.Success("Profil mis à jour avec succès", "")
	return nil
}
