package main

import (
	"context"
	"flag"
	"fmt"
	"text/tabwriter"

	"github.com/citefix/citefix-cli/internal/api"
	"github.com/citefix/citefix-cli/internal/collection"
	"github.com/citefix/citefix-cli/internal/domain"
)

func (a *app) handleSignalements(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix signalements <list|show|create|delete|validate>")
		return nil
	}

	switch args[0] {
	case "list":
		return a.signalementsList(ctx, args[1:])
	case "show":
		return a.signalementsShow(ctx, args[1:])
	case "create":
		return a.signalementsCreate(ctx, args[1:])
	case "delete":
		return a.signalementsDelete(ctx, args[1:])
	case "validate":
		return a.signalementsValidate(ctx, args[1:])
	default:
		return fmt.Errorf("unknown signalements command: %s", args[0])
	}
}

func (a *app) signalementsList(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	search := fs.String("search", "", "recherche par titre, description ou lieu")
	category := fs.String("category", collection.All, "catégorie (infrastructure, eclairage, environnement, securite, transport, autre)")
	status := fs.String("status", collection.All, "statut (nouveau, en_attente, valide, en_cours, resolu, rejete)")
	priority := fs.String("priority", collection.All, "priorité (urgent, haute, moyenne, faible)")
	page := fs.Int("page", 1, "numéro de page")
	fs.Parse(args)

	records, err := a.client.ListSignalements(ctx)
	if err != nil {
		a.notifier.Error("Erreur", "Impossible de charger les signalements")
		return err
	}

	view := collection.NewView(collection.SignalementFields(), a.cfg.List.PageSize)
	view.SetRecords(records)
	view.SetSearch(*search)
	view.SetFilter(collection.TermCategory, *category)
	view.SetFilter(collection.TermStatus, *status)
	view.SetFilter(collection.TermPriority, *priority)
	view.SetPage(*page)

	visible, total := view.Visible()
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITRE\tCATÉGORIE\tSTATUT\tADRESSE")
	for _, s := range visible {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Title, labelCategory(s.Category), labelStatus(s.Status), s.Location.Address)
	}
	w.Flush()
	fmt.Fprintf(a.out, "\nPage %d/%d — %d résultat(s)\n", view.Page(), view.TotalPages(), total)
	return nil
}

func (a *app) signalementsShow(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix signalements show <id>")
		return nil
	}

	sig, err := a.client.GetSignalement(ctx, args[0])
	if err != nil {
		a.notifier.Error("Erreur", "Impossible de charger le signalement")
		return err
	}

	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", sig.ID)
	fmt.Fprintf(w, "Titre\t%s\n", sig.Title)
	fmt.Fprintf(w, "Description\t%s\n", sig.Description)
	fmt.Fprintf(w, "Catégorie\t%s\n", labelCategory(sig.Category))
	fmt.Fprintf(w, "Statut\t%s\n", labelStatus(sig.Status))
	if sig.Priority != "" {
		fmt.Fprintf(w, "Priorité\t%s\n", sig.Priority)
	}
	fmt.Fprintf(w, "Adresse\t%s\n", sig.Location.Address)
	if sig.Location.Coordinates != nil {
		fmt.Fprintf(w, "Position\t%.5f, %.5f\n", sig.Location.Coordinates.Lat, sig.Location.Coordinates.Lng)
	}
	if sig.ReportedBy != nil {
		if name := sig.ReportedBy.FirstName + " " + sig.ReportedBy.LastName; name != " " {
			fmt.Fprintf(w, "Signalé par\t%s\n", name)
		} else {
			fmt.Fprintf(w, "Signalé par\t%s\n", sig.ReportedBy.ID)
		}
	}
	if !sig.CreatedAt.IsZero() {
		fmt.Fprintf(w, "Créé le\t%s\n", sig.CreatedAt.Format("02/01/2006 15:04"))
	}
	for _, photo := range sig.Photos {
		fmt.Fprintf(w, "Photo\t%s\n", photo.URL)
	}
	return w.Flush()
}

func (a *app) signalementsCreate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	title := fs.String("title", "", "titre du signalement")
	description := fs.String("description", "", "description détaillée")
	category := fs.String("category", "", "catégorie")
	address := fs.String("address", "", "adresse du problème")
	lat := fs.Float64("lat", 0, "latitude")
	lng := fs.Float64("lng", 0, "longitude")
	fs.Parse(args)

	if err := a.requireUser(ctx); err != nil {
		return err
	}

	if *title == "" || *description == "" || *category == "" || *address == "" {
		a.notifier.Error("Erreur", "Titre, description, catégorie et adresse sont obligatoires")
		return fmt.Errorf("missing required fields")
	}
	if _, ok := domain.CategoryLabels[domain.Category(*category)]; !ok {
		a.notifier.Error("Erreur", "Catégorie inconnue : "+*category)
		return fmt.Errorf("unknown category %q", *category)
	}

	req := api.NewSignalement{
		Title:       *title,
		Description: *description,
		Category:    domain.Category(*category),
		Location:    domain.Location{Address: *address},
		ReportedBy:  a.session.CurrentUser().ID,
	}
	if *lat != 0 || *lng != 0 {
		req.Location.Coordinates = &domain.GeoPoint{Lat: *lat, Lng: *lng}
	}

	created, err := a.client.CreateSignalement(ctx, req)
	if err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors de la création du signalement"))
		return err
	}

	detail := "Votre signalement a été enregistré et sera traité prochainement"
	if created.ID != "" {
		detail += " (id: " + created.ID + ")"
	}
	a.notifier.Success("Signalement créé avec succès", detail)
	return nil
}

func (a *app) signalementsDelete(ctx context.Context, args []string) error {
	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix signalements delete <id>")
		return nil
	}
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	if err := a.client.DeleteSignalement(ctx, args[0]); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors de la suppression"))
		return err
	}
	a.notifier.Success("Signalement supprimé avec succès", "")
	return nil
}

func (a *app) signalementsValidate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	action := fs.String("action", "approve", "décision (approve ou reject)")
	comment := fs.String("comment", "", "commentaire de validation")

	if len(args) < 1 {
		fmt.Fprintln(a.out, "Usage: citefix signalements validate <id> [-action approve|reject] [-comment ...]")
		return nil
	}
	id := args[0]
	fs.Parse(args[1:])

	if err := a.requireAdmin(ctx); err != nil {
		return err
	}

	act := api.ValidationAction(*action)
	if act != api.ValidationApprove && act != api.ValidationReject {
		a.notifier.Error("Erreur", "Action inconnue : "+*action)
		return fmt.Errorf("unknown validation action %q", *action)
	}

	if err := a.client.ValidateSignalement(ctx, id, act, *comment); err != nil {
		a.notifier.Error("Erreur", api.UserMessage(err, "Erreur lors de la validation"))
		return err
	}

	if act == api.ValidationApprove {
		a.notifier.Success("Signalement validé avec succès", "")
	} else {
		a.notifier.Success("Signalement rejeté avec succès", "")
	}
	return nil
}

func labelCategory(c domain.Category) string {
	if label, ok := domain.CategoryLabels[c]; ok {
		return label
	}
	return string(c)
}

func labelStatus(s domain.Status) string {
	if label, ok := domain.StatusLabels[s]; ok {
		return label
	}
	return string(s)
}
