package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Category of a signalement.
type Category string

const (
	CategoryInfrastructure Category = "infrastructure"
	CategoryLighting       Category = "eclairage"
	CategoryEnvironment    Category = "environnement"
	CategorySecurity       Category = "securite"
	CategoryTransport      Category = "transport"
	CategoryOther          Category = "autre"
)

// Status of a signalement in the triage workflow.
type Status string

const (
	StatusNew        Status = "nouveau"
	StatusPending    Status = "en_attente"
	StatusValidated  Status = "valide"
	StatusInProgress Status = "en_cours"
	StatusResolved   Status = "resolu"
	StatusRejected   Status = "rejete"
)

// Priority assigned by triage.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "haute"
	PriorityMedium Priority = "moyenne"
	PriorityLow    Priority = "faible"
)

// CategoryLabels maps category values to their display labels.
var CategoryLabels = map[Category]string{
	CategoryInfrastructure: "Infrastructure",
	CategoryLighting:       "Éclairage public",
	CategoryEnvironment:    "Environnement",
	CategorySecurity:       "Sécurité publique",
	CategoryTransport:      "Transport public",
	CategoryOther:          "Autre",
}

// StatusLabels maps workflow statuses to their display labels.
var StatusLabels = map[Status]string{
	StatusNew:        "Nouveau",
	StatusPending:    "En attente",
	StatusValidated:  "Validé",
	StatusInProgress: "En cours",
	StatusResolved:   "Résolu",
	StatusRejected:   "Rejeté",
}

// GeoPoint is a WGS84 coordinate pair. The backend is inconsistent about its
// encoding: reads may return {"lat":..,"lng":..} while writes use a GeoJSON
// Point whose coordinates array is [lng, lat]. Both are accepted on decode and
// GeoJSON is always produced on encode.
type GeoPoint struct {
	Lat float64
	Lng float64
}

type geoJSONPoint struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type latLngPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// MarshalJSON encodes the point as GeoJSON, the shape the backend accepts.
func (p GeoPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(geoJSONPoint{Type: "Point", Coordinates: [2]float64{p.Lng, p.Lat}})
}

// UnmarshalJSON accepts either the GeoJSON or the lat/lng object form.
func (p *GeoPoint) UnmarshalJSON(data []byte) error {
	var geo geoJSONPoint
	if err := json.Unmarshal(data, &geo); err == nil && geo.Type == "Point" {
		p.Lng = geo.Coordinates[0]
		p.Lat = geo.Coordinates[1]
		return nil
	}
	var ll latLngPoint
	if err := json.Unmarshal(data, &ll); err != nil {
		return fmt.Errorf("decode coordinates: %w", err)
	}
	p.Lat = ll.Lat
	p.Lng = ll.Lng
	return nil
}

// Location is where an incident was reported.
type Location struct {
	Address     string    `json:"adresse"`
	Coordinates *GeoPoint `json:"coordonnees,omitempty"`
}

// Reporter identifies who filed a signalement. The backend returns either a
// bare user-id string or an embedded {_id, nom, prenom} object depending on
// the endpoint; both collapse to this struct at decode time.
type Reporter struct {
	ID        string `json:"_id"`
	LastName  string `json:"nom"`
	FirstName string `json:"prenom"`
}

// UnmarshalJSON accepts a user-id string or an embedded user object.
func (r *Reporter) UnmarshalJSON(data []byte) error {
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		r.ID = id
		return nil
	}
	type plain Reporter
	var obj plain
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode signalePar: %w", err)
	}
	*r = Reporter(obj)
	return nil
}

// Photo attached to a signalement.
type Photo struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// Signalement is a citizen-submitted incident report.
type Signalement struct {
	ID           string    `json:"_id"`
	Title        string    `json:"titre"`
	Description  string    `json:"description"`
	Category     Category  `json:"categorie"`
	Status       Status    `json:"statut"`
	Priority     Priority  `json:"priorite,omitempty"`
	Location     Location  `json:"localisation"`
	ReportedBy   *Reporter `json:"signalePar,omitempty"`
	Photos       []Photo   `json:"photos,omitempty"`
	CreatedAt    time.Time `json:"dateCreation,omitempty"`
	ViewCount    int       `json:"nombreVues,omitempty"`
	CommentCount int       `json:"nombreCommentaires,omitempty"`
	LikeCount    int       `json:"nombreLikes,omitempty"`
}

// Normalize fills defaults for fields the backend may omit.
func (s *Signalement) Normalize() {
	if s.Category == "" {
		s.Category = CategoryOther
	}
	if s.Status == "" {
		s.Status = StatusNew
	}
}
