package loan

import "strings"

// Search returns the loans whose client, account number or phone number
// contains term, ignoring case. A blank term matches everything.
func Search(loans []Loan, term string) []Loan {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return loans
	}

	var out []Loan

	for _, l := range loans {
		if contains(l.Client, term) || contains(l.AccountNumber, term) || contains(l.PhoneNumber, term) {
			out = append(out, l)
		}
	}

	return out
}

// AssignedTo returns the loans held by the given agent.
func AssignedTo(loans []Loan, agentID string) []Loan {
	var out []Loan

	for _, l := range loans {
		if l.AssignedAgentID == agentID {
			out = append(out, l)
		}
	}

	return out
}

func contains(field, lowerTerm string) bool {
	return field != "" && strings.Contains(strings.ToLower(field), lowerTerm)
}
