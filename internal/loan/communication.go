package loan

import (
	"errors"
	"slices"
	"strings"

	"github.com/MrJamesThe3rd/collecta/internal/agent"
	"github.com/MrJamesThe3rd/collecta/internal/calendar"
)

// UnknownAgent is the author name stored when the author is not on the roster.
const UnknownAgent = "Unknown Agent"

var (
	ErrEmptyNotes      = errors.New("communication notes are required")
	ErrInvalidCommType = errors.New("invalid communication type")
)

// NewCommunication builds a log entry authored by author. A nil author is
// recorded under UnknownAgent.
func NewCommunication(typ CommType, notes string, author *agent.Agent, today calendar.Date, id string) CommunicationLogEntry {
	entry := CommunicationLogEntry{
		ID:        id,
		Date:      today,
		Type:      typ,
		Notes:     strings.TrimSpace(notes),
		AgentName: UnknownAgent,
	}

	if author != nil {
		entry.AgentID = author.ID
		entry.AgentName = author.Name
	}

	return entry
}

// AddCommunication puts entry at the head of the loan's log.
func AddCommunication(l Loan, entry CommunicationLogEntry) (Loan, error) {
	if strings.TrimSpace(entry.Notes) == "" {
		return l, ErrEmptyNotes
	}

	if !entry.Type.Valid() {
		return l, ErrInvalidCommType
	}

	history := make([]CommunicationLogEntry, 0, len(l.CommunicationHistory)+1)
	history = append(history, entry)
	l.CommunicationHistory = append(history, l.CommunicationHistory...)

	return l, nil
}

func UpdateRemark(l Loan, remark string) Loan {
	l.Remark = remark
	return l
}

// Unassign returns the loans with every assignment to agentID cleared.
func Unassign(loans []Loan, agentID string) []Loan {
	out := slices.Clone(loans)

	for i := range out {
		if out[i].AssignedAgentID == agentID {
			out[i].AssignedAgentID = ""
		}
	}

	return out
}
