package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"golang.org/x/sync/errgroup"

	"github.com/citefix/citefix-cli/internal/api"
	"github.com/citefix/citefix-cli/internal/collection"
	"github.com/citefix/citefix-cli/internal/domain"
)

func (a *app) handleAdmin(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix admin <users|role|status|delete-user|stats>")
		return nil
	}

	switch args[0] {
	case "users":
		return a.adminUsers(ctx, args[1:])
	case "role":
		return a.adminRole(ctx, args[1:])
	case "status":
		return a.adminStatus(ctx, args[1:])
	case "delete-user":
		return a.adminDeleteUser(ctx, args[1:])
	case "stats":
		return a.adminStats(ctx)
	default:
		return fmt.Errorf("unknown admin command: %s", args[0])
	}
}

func (a *app) adminUsers(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("users", flag.ExitOnError)
	search := fs.String("search", "", "recherche par nom, email ou téléphone")
	role := fs.String("role", collection.All, "rôle (user, admin)")
	status := fs.String("status", collection.All, "statut du compte (active, suspended, banned)")
	page := fs.Int("page", 1, "numéro de page")
	fs.Parse(args)

	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Impossible de charger les utilisateurs"))
		return err
	}

	view := collection.NewView(collection.UserFields(), a.cfg.List.PageSize)
	view.SetRecords(users)
	view.SetSearch(*search)
	view.SetFilter(collection.TermRole, *role)
	view.SetFilter(collection.TermStatus, *status)
	view.SetPage(*page)

	byRole := view.CountBy(collection.TermRole)
	fmt.Fprintf(a.out, "%d utilisateur(s), %d admin(s)\n\n",
		byRole[string(domain.RoleUser)], byRole[string(domain.RoleAdmin)])

	visible, total := view.Visible()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNOM\tEMAIL\tRÔLE\tSTATUT")
	for _, u := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.DisplayName(), u.Email, u.Role, u.Status)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\nPage %d/%d — %d résultat(s)\n", view.Page(), view.TotalPages(), total)
	return nil
}

func (a *app) adminRole(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: citefix admin role <user-id> <user|admin>")
		return nil
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	role := domain.Role(args[1])
	if role != domain.RoleUser && role != domain.RoleAdmin {
		a.notifier.Error("Erreur", "Rôle inconnu : "+args[1])
		return fmt.Errorf("unknown role %q", args[1])
	}

	if err := a.client.ChangeUserRole(ctx, args[0], role); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors du changement de rôle"))
		return err
	}
	a.notifier.Success("Rôle modifié avec succès", fmt.Sprintf("L'utilisateur est maintenant %s", role))
	return nil
}

func (a *app) adminStatus(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: citefix admin status <user-id> <active|suspended|banned>")
		return nil
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	status := args[1]
	switch status {
	case domain.UserStatusActive, domain.UserStatusSuspended, domain.UserStatusBanned:
	default:
		a.notifier.Error("Erreur", "Statut inconnu : "+status)
		return fmt.Errorf("unknown status %q", status)
	}

	if err := a.client.ChangeUserStatus(ctx, args[0], status); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors du changement de statut"))
		return err
	}
	a.notifier.Success("Statut modifié avec succès", "Nouveau statut : "+status)
	return nil
}

func (a *app) adminDeleteUser(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix admin delete-user <user-id>")
		return nil
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	if err := a.client.DeleteUser(ctx, args[0]); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors de la suppression du compte"))
		return err
	}
	a.notifier.Success("Utilisateur supprimé avec succès", "")
	return nil
}

// adminStats fetches both collections concurrently and prints the triage
// dashboard counters.
func (a *app) adminStats(ctx context.Context) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	var (
		signalements []domain.Signalement
		users        []domain.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		signalements, err = a.client.ListSignalements(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = a.client.ListUsers(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Impossible de charger les statistiques"))
		return err
	}

	view := collection.NewView(collection.SignalementFields(), a.cfg.List.PageSize)
	view.SetRecords(signalements)
	byStatus := view.CountBy(collection.TermStatus)
	byCategory := view.CountBy(collection.TermCategory)

	admins := 0
	for _, u := range users {
		if u.IsAdmin() {
			admins++
		}
	}

	statusOrder := []domain.Status{
		domain.StatusNew, domain.StatusPending, domain.StatusValidated,
		domain.StatusInProgress, domain.StatusResolved, domain.StatusRejected,
	}
	categoryOrder := []domain.Category{
		domain.CategoryInfrastructure, domain.CategoryLighting, domain.CategoryEnvironment,
		domain.CategorySecurity, domain.CategoryTransport, domain.CategoryOther,
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Signalements\t%d\n", len(signalements))
	for _, status := range statusOrder {
		if n := byStatus[string(status)]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", domain.StatusLabels[status], n)
		}
	}
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Par catégorie\t\n")
	for _, category := range categoryOrder {
		if n := byCategory[string(category)]; n > 0 {
			fmt.Fprintf(w, "  %s\t%d\n", domain.CategoryLabels[category], n)
		}
	}
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Utilisateurs\t%d\n", len(users))
	fmt.Fprintf(w, "  Administrateurs\t%d\n", admins)
	return w.Flush()
}
