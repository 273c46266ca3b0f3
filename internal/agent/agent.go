package agent

import "strings"

// Agent is a member of the collection team. Admins import and distribute
// loans; everyone else collects on the loans assigned to them.
type Agent struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// FindByUsername returns the first agent whose username matches,
// ignoring case and surrounding whitespace.
func FindByUsername(agents []Agent, username string) (Agent, bool) {
	username = strings.TrimSpace(username)

	for _, a := range agents {
		if strings.EqualFold(a.Username, username) {
			return a, true
		}
	}

	return Agent{}, false
}

func FindByID(agents []Agent, id string) (Agent, bool) {
	for _, a := range agents {
		if a.ID == id {
			return a, true
		}
	}

	return Agent{}, false
}

// Collectors returns the non-admin agents in roster order.
func Collectors(agents []Agent) []Agent {
	out := make([]Agent, 0, len(agents))

	for _, a := range agents {
		if !a.IsAdmin {
			out = append(out, a)
		}
	}

	return out
}
