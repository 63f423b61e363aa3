package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/citefix/citefix-cli/internal/domain"
)

const signalementsCachePrefix = "signalements:"

// ValidationAction is an admin triage decision.
type ValidationAction string

const (
	ValidationApprove ValidationAction = "approve"
	ValidationReject  ValidationAction = "reject"
)

// ListSignalements fetches the full report set.
func (c *Client) ListSignalements(ctx context.Context) ([]domain.Signalement, error) {
	key := signalementsCachePrefix + "list"
	if sigs, ok := c.signalements.Get(key); ok {
		return sigs, nil
	}

	var envelope listEnvelope[domain.Signalement]
	if err := c.do(ctx, http.MethodGet, "/signalements", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("list signalements: %w", ErrInvalidResponse)
	}
	for i := range envelope.Data {
		envelope.Data[i].Normalize()
	}
	c.signalements.Set(key, envelope.Data, c.cacheTTL)
	return envelope.Data, nil
}

// GetSignalement fetches one report.
func (c *Client) GetSignalement(ctx context.Context, id string) (*domain.Signalement, error) {
	var envelope docEnvelope[domain.Signalement]
	if err := c.do(ctx, http.MethodGet, "/signalements/"+id, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return nil, fmt.Errorf("get signalement %s: %w", id, ErrInvalidResponse)
	}
	envelope.Data.Normalize()
	return envelope.Data, nil
}

// NewSignalement is the POST /signalements payload.
type NewSignalement struct {
	Title       string          `json:"titre"`
	Description string          `json:"description"`
	Category    domain.Category `json:"categorie"`
	Location    domain.Location `json:"localisation"`
	ReportedBy  string          `json:"signalePar"`
	Photos      []domain.Photo  `json:"photos"`
}

// CreateSignalement files a new report for the given reporter.
func (c *Client) CreateSignalement(ctx context.Context, req NewSignalement) (*domain.Signalement, error) {
	if req.Photos == nil {
		req.Photos = []domain.Photo{}
	}
	var envelope docEnvelope[domain.Signalement]
	if err := c.do(ctx, http.MethodPost, "/signalements", req, &envelope); err != nil {
		return nil, err
	}
	c.signalements.Invalidate(signalementsCachePrefix)
	if envelope.Data == nil {
		// Some deployments return the bare created document; the caller only
		// needs the side effect, so an empty doc is tolerated here.
		return &domain.Signalement{}, nil
	}
	envelope.Data.Normalize()
	return envelope.Data, nil
}

// DeleteSignalement removes a report (admin only).
func (c *Client) DeleteSignalement(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/signalements/"+id, nil, nil); err != nil {
		return err
	}
	c.signalements.Invalidate(signalementsCachePrefix)
	return nil
}

// ValidateSignalement records an approve/reject triage decision with an
// optional comment (admin only).
func (c *Client) ValidateSignalement(ctx context.Context, id string, action ValidationAction, comment string) error {
	body := map[string]string{"action": string(action), "comment": comment}
	if err := c.do(ctx, http.MethodPost, "/signalements/"+id+"/validate", body, nil); err != nil {
		return err
	}
	c.signalements.Invalidate(signalementsCachePrefix)
	return nil
}
