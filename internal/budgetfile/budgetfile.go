// Package budgetfile reads an event and its participants from a TOML file
// so budgets can be calculated offline.
//
//	[event]
//	name = "Lake house"
//	adult_budget = "100.00"
//	child_budget = "50.00"
//	general_costs = "20.00"
//
//	[[participants]]
//	name = "Ann"
//	type = "ADULT"
//	partner = "Ben"
//
// Participant ids default to their names. A partner named on one side only
// is linked on both.
package budgetfile

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/mmynk/eventbudget/internal/budget"
)

type fileEvent struct {
	Name         string `toml:"name"`
	AdultBudget  string `toml:"adult_budget"`
	ChildBudget  string `toml:"child_budget"`
	GeneralCosts string `toml:"general_costs"`
}

type fileParticipant struct {
	ID           string `toml:"id"`
	Name         string `toml:"name"`
	Type         string `toml:"type"`
	CustomBudget string `toml:"custom_budget"`
	Partner      string `toml:"partner"`
}

type file struct {
	Event        fileEvent         `toml:"event"`
	Participants []fileParticipant `toml:"participants"`
	Payers       []string          `toml:"payers"`
}

// Plan is a validated budget file.
type Plan struct {
	Name         string
	Event        budget.Event
	Participants []budget.Participant
	// Names maps participant id to display name.
	Names map[string]string
	// Payers are the payer ids listed in the file, if any.
	Payers []string
}

// Load reads and validates the file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading budget file: %w", err)
	}
	return Parse(data)
}

// Parse validates a budget file held in memory.
func Parse(data []byte) (*Plan, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, fmt.Errorf("parsing budget file: %w", err)
	}

	plan := &Plan{
		Name:   f.Event.Name,
		Names:  make(map[string]string, len(f.Participants)),
		Payers: f.Payers,
	}

	var err error
	if plan.Event.AdultBudget, err = budget.ParseMoney(f.Event.AdultBudget); err != nil {
		return nil, fmt.Errorf("event.adult_budget: %w", err)
	}
	if plan.Event.ChildBudget, err = budget.ParseMoney(f.Event.ChildBudget); err != nil {
		return nil, fmt.Errorf("event.child_budget: %w", err)
	}
	if plan.Event.GeneralCosts, err = budget.ParseMoney(f.Event.GeneralCosts); err != nil {
		return nil, fmt.Errorf("event.general_costs: %w", err)
	}

	index := make(map[string]int, len(f.Participants))
	for i, fp := range f.Participants {
		id := strings.TrimSpace(fp.ID)
		if id == "" {
			id = strings.TrimSpace(fp.Name)
		}
		if id == "" {
			return nil, fmt.Errorf("participants[%d]: name or id required", i)
		}
		if _, dup := index[id]; dup {
			return nil, fmt.Errorf("participants[%d]: duplicate id %q", i, id)
		}

		t := budget.ParticipantType(strings.ToUpper(strings.TrimSpace(fp.Type)))
		if t == "" {
			t = budget.Adult
		}
		if !t.Valid() {
			return nil, fmt.Errorf("participant %q: invalid type %q", id, fp.Type)
		}
		custom, err := budget.ParseOptionalMoney(strings.TrimSpace(fp.CustomBudget))
		if err != nil {
			return nil, fmt.Errorf("participant %q: custom_budget: %w", id, err)
		}

		index[id] = len(plan.Participants)
		plan.Participants = append(plan.Participants, budget.Participant{
			ID:           id,
			Type:         t,
			CustomBudget: custom,
		})
		name := fp.Name
		if name == "" {
			name = id
		}
		plan.Names[id] = name
	}

	for i, fp := range f.Participants {
		partner := strings.TrimSpace(fp.Partner)
		if partner == "" {
			continue
		}
		if err := plan.pair(plan.Participants[i].ID, partner, index); err != nil {
			return nil, err
		}
	}

	return plan, nil
}

// pair links a and b symmetrically. Conflicting partners are an error.
func (p *Plan) pair(a, b string, index map[string]int) error {
	if a == b {
		return fmt.Errorf("participant %q cannot be its own partner", a)
	}
	j, ok := index[b]
	if !ok {
		return fmt.Errorf("participant %q: unknown partner %q", a, b)
	}
	pa := &p.Participants[index[a]]
	pb := &p.Participants[j]
	if (pa.PartnerID != "" && pa.PartnerID != b) || (pb.PartnerID != "" && pb.PartnerID != a) {
		return fmt.Errorf("participants %q and %q are already paired with someone else", a, b)
	}
	pa.PartnerID, pa.IsCouple = b, true
	pb.PartnerID, pb.IsCouple = a, true
	return nil
}

// ErrUnknownPayer is returned when a payer id is not a participant.
var ErrUnknownPayer = errors.New("unknown payer")

// Summarize calculates the plan's budget. payerIDs overrides the payers
// listed in the file; both are de-duplicated. With no payers the adults pay.
func (p *Plan) Summarize(payerIDs []string) (budget.Summary, error) {
	if len(payerIDs) == 0 {
		payerIDs = p.Payers
	}

	byID := make(map[string]budget.Participant, len(p.Participants))
	for _, participant := range p.Participants {
		byID[participant.ID] = participant
	}

	var payers []budget.Participant
	seen := make(map[string]bool, len(payerIDs))
	for _, id := range payerIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		participant, ok := byID[id]
		if !ok {
			return budget.Summary{}, fmt.Errorf("%w %q", ErrUnknownPayer, id)
		}
		payers = append(payers, participant)
	}

	return budget.Summarize(p.Event, p.Participants, payers), nil
}
