package collection

import "github.com/citefix/citefix-cli/internal/domain"

// Filter names shared by the list views and the CLI flags.
const (
	TermCategory = "category"
	TermStatus   = "status"
	TermPriority = "priority"
	TermRole     = "role"
)

// SignalementFields matches signalements on title, description and address,
// with category, status and priority as exact-term filters. The citizen list
// and the admin triage table share this field set.
func SignalementFields() Fields[domain.Signalement] {
	return Fields[domain.Signalement]{
		Text: func(s domain.Signalement) []string {
			return []string{s.Title, s.Description, s.Location.Address}
		},
		Terms: map[string]func(domain.Signalement) string{
			TermCategory: func(s domain.Signalement) string { return string(s.Category) },
			TermStatus:   func(s domain.Signalement) string { return string(s.Status) },
			TermPriority: func(s domain.Signalement) string { return string(s.Priority) },
		},
	}
}

// UserFields matches users on name, email and phone, with role and status as
// exact-term filters, for the admin user-management view.
func UserFields() Fields[domain.User] {
	return Fields[domain.User]{
		Text: func(u domain.User) []string {
			return []string{u.FirstName, u.LastName, u.Email, u.Phone}
		},
		Terms: map[string]func(domain.User) string{
			TermRole:   func(u domain.User) string { return string(u.Role) },
			TermStatus: func(u domain.User) string { return u.Status },
		},
	}
}
