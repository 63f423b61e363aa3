package collection

import (
	"testing"

	"github.com/citefix/citefix-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sig(id, title string, cat domain.Category, status domain.Status) domain.Signalement {
	return domain.Signalement{
		ID:          id,
		Title:       title,
		Description: "description de " + title,
		Category:    cat,
		Status:      status,
		Location:    domain.Location{Address: "Avenue des Martyrs, Cotonou"},
	}
}

func sampleSignalements() []domain.Signalement {
	return []domain.Signalement{
		sig("1", "Nid de poule dangereux", domain.CategoryInfrastructure, domain.StatusPending),
		sig("2", "Éclairage défaillant", domain.CategoryLighting, domain.StatusInProgress),
		sig("3", "Déchets non collectés", domain.CategoryEnvironment, domain.StatusResolved),
		sig("4", "Trottoir effondré", domain.CategoryInfrastructure, domain.StatusResolved),
		sig("5", "Feu tricolore en panne", domain.CategoryTransport, domain.StatusNew),
	}
}

func TestFilterDeterministicAndStable(t *testing.T) {
	records := sampleSignalements()
	fields := SignalementFields()
	filters := map[string]string{TermStatus: All, TermCategory: "infrastructure"}

	first, firstTotal := Apply(records, fields, "", filters, 1, 9)
	second, secondTotal := Apply(records, fields, "", filters, 1, 9)

	assert.Equal(t, first, second)
	assert.Equal(t, firstTotal, secondTotal)

	// Source order preserved: id 1 before id 4.
	require.Len(t, first, 2)
	assert.Equal(t, "1", first[0].ID)
	assert.Equal(t, "4", first[1].ID)
}

func TestFilterANDSemantics(t *testing.T) {
	records := []domain.Signalement{
		sig("1", "Nid de poule", domain.CategoryInfrastructure, domain.StatusResolved),
	}
	fields := SignalementFields()

	got := Filter(records, fields, "", map[string]string{
		TermCategory: "infrastructure",
		TermStatus:   "en_attente",
	})
	assert.Empty(t, got, "resolved record must not match a pending-status filter")

	got = Filter(records, fields, "", map[string]string{
		TermCategory: All,
		TermStatus:   All,
	})
	assert.Len(t, got, 1)
}

func TestSearchCaseInsensitiveSubstring(t *testing.T) {
	records := []domain.Signalement{
		sig("1", "Nid de poule dangereux", domain.CategoryInfrastructure, domain.StatusPending),
		sig("2", "Éclairage défaillant", domain.CategoryLighting, domain.StatusNew),
	}
	got := Filter(records, SignalementFields(), "nid de poule", nil)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].ID)
}

func TestSearchMatchesAnyTextField(t *testing.T) {
	records := sampleSignalements()
	// "cotonou" only appears in the address field.
	got := Filter(records, SignalementFields(), "COTONOU", nil)
	assert.Len(t, got, len(records))
}

func TestEmptySearchMatchesEverything(t *testing.T) {
	records := sampleSignalements()
	got := Filter(records, SignalementFields(), "", nil)
	assert.Equal(t, records, got)
}

func TestPaginationBoundaries(t *testing.T) {
	records := make([]domain.Signalement, 9)
	for i := range records {
		records[i] = sig(string(rune('a'+i)), "Titre", domain.CategoryOther, domain.StatusNew)
	}
	fields := SignalementFields()

	pageOne, total := Apply(records, fields, "", nil, 1, 9)
	assert.Len(t, pageOne, 9)
	assert.Equal(t, 9, total)

	pageTwo, total := Apply(records, fields, "", nil, 2, 9)
	assert.Empty(t, pageTwo)
	assert.Equal(t, 9, total)
}

func TestPaginatePartialLastPage(t *testing.T) {
	records := sampleSignalements() // 5 records
	page := Paginate(records, 2, 3)
	require.Len(t, page, 2)
	assert.Equal(t, "4", page[0].ID)
	assert.Equal(t, "5", page[1].ID)
}

func TestViewResetsPageOnSearchChange(t *testing.T) {
	records := make([]domain.Signalement, 9)
	for i := range records {
		records[i] = sig(string(rune('a'+i)), "Titre", domain.CategoryOther, domain.StatusNew)
	}
	v := NewView(SignalementFields(), 3)
	v.SetRecords(records)
	v.SetPage(3)
	require.Equal(t, 3, v.Page())

	v.SetSearch("titre")
	assert.Equal(t, 1, v.Page())

	v.SetPage(2)
	v.SetFilter(TermStatus, "nouveau")
	assert.Equal(t, 1, v.Page())
}

func TestViewKeepsPageOnRecordsChange(t *testing.T) {
	records := sampleSignalements()
	v := NewView(SignalementFields(), 2)
	v.SetRecords(records)
	v.SetPage(2)

	v.SetRecords(records[:4])
	assert.Equal(t, 2, v.Page())
}

func TestViewBoundaryNavigation(t *testing.T) {
	v := NewView(SignalementFields(), 2)
	v.SetRecords(sampleSignalements()) // 5 records, 3 pages

	v.PrevPage()
	assert.Equal(t, 1, v.Page(), "prev is disabled on the first page")

	v.SetPage(3)
	v.NextPage()
	assert.Equal(t, 3, v.Page(), "next is disabled on the last page")

	v.SetPage(99)
	assert.Equal(t, 3, v.Page(), "out-of-range jumps are ignored")
}

func TestViewCountBy(t *testing.T) {
	v := NewView(SignalementFields(), 9)
	v.SetRecords(sampleSignalements())

	counts := v.CountBy(TermStatus)
	assert.Equal(t, 2, counts["resolu"])
	assert.Equal(t, 1, counts["en_attente"])
}

func TestUserFieldsFilterByRole(t *testing.T) {
	users := []domain.User{
		{ID: "u1", FirstName: "Jean", LastName: "Dupont", Email: "jean@citefix.bj", Role: domain.RoleAdmin, Status: "active"},
		{ID: "u2", FirstName: "Marie", LastName: "Kossou", Email: "marie@citefix.bj", Role: domain.RoleUser, Status: "active"},
		{ID: "u3", FirstName: "Adjoa", LastName: "Mensah", Email: "adjoa@citefix.bj", Role: domain.RoleUser, Status: "suspended"},
	}
	fields := UserFields()

	admins := Filter(users, fields, "", map[string]string{TermRole: "admin"})
	require.Len(t, admins, 1)
	assert.Equal(t, "u1", admins[0].ID)

	suspended := Filter(users, fields, "kossou", map[string]string{TermStatus: "suspended"})
	assert.Empty(t, suspended, "search and filters combine with AND")
}
