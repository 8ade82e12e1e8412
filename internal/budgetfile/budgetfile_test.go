package budgetfile

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmynk/eventbudget/internal/budget"
)

const tripFile = `
[event]
name = "Lake house"
adult_budget = "100.00"
child_budget = "50.00"
general_costs = "20.00"

[[participants]]
name = "A"
type = "ADULT"

[[participants]]
name = "B"
type = "adult"
partner = "C"

[[participants]]
name = "C"
`

func TestParseTrip(t *testing.T) {
	plan, err := Parse([]byte(tripFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if plan.Name != "Lake house" || len(plan.Participants) != 3 {
		t.Fatalf("unexpected plan: %+v", plan)
	}

	c := plan.Participants[2]
	if c.PartnerID != "B" || !c.IsCouple || c.Type != budget.Adult {
		t.Errorf("C should default to adult and be paired with B: %+v", c)
	}

	summary, err := plan.Summarize(nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got := budget.FormatMoney(summary.TotalBudget); got != "220.00" {
		t.Errorf("TotalBudget = %s, want 220.00", got)
	}
	if got := budget.FormatMoney(summary.BudgetPerPayer); got != "110.00" {
		t.Errorf("BudgetPerPayer = %s, want 110.00", got)
	}
	if summary.NumberOfPayers != 2 {
		t.Errorf("NumberOfPayers = %d, want 2", summary.NumberOfPayers)
	}
}

func TestSummarizePayers(t *testing.T) {
	plan, err := Parse([]byte(tripFile + "\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		name      string
		payers    []string
		wantUnits int
		wantPer   string
	}{
		{"single", []string{"A"}, 1, "220.00"},
		{"repeated single", []string{"A", "A"}, 1, "220.00"},
		{"couple", []string{"B", "C"}, 1, "220.00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary, err := plan.Summarize(tt.payers)
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}
			if summary.NumberOfPayers != tt.wantUnits {
				t.Errorf("NumberOfPayers = %d, want %d", summary.NumberOfPayers, tt.wantUnits)
			}
			if got := budget.FormatMoney(summary.BudgetPerPayer); got != tt.wantPer {
				t.Errorf("BudgetPerPayer = %s, want %s", got, tt.wantPer)
			}
		})
	}

	if _, err := plan.Summarize([]string{"Z"}); !errors.Is(err, ErrUnknownPayer) {
		t.Errorf("expected ErrUnknownPayer, got %v", err)
	}
}

func TestFilePayers(t *testing.T) {
	plan, err := Parse([]byte("payers = [\"A\"]\n" + tripFile))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	summary, err := plan.Summarize(nil)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.NumberOfPayers != 1 {
		t.Errorf("file payers should apply, got %d units", summary.NumberOfPayers)
	}

	summary, err = plan.Summarize([]string{"A", "B"})
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if summary.NumberOfPayers != 2 {
		t.Errorf("explicit payers should override the file, got %d units", summary.NumberOfPayers)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"negative budget", "[event]\nadult_budget = \"-1\"", "adult_budget"},
		{"bad type", "[[participants]]\nname = \"A\"\ntype = \"PET\"", "invalid type"},
		{"duplicate", "[[participants]]\nname = \"A\"\n[[participants]]\nname = \"A\"", "duplicate"},
		{"unknown partner", "[[participants]]\nname = \"A\"\npartner = \"Z\"", "unknown partner"},
		{"self partner", "[[participants]]\nname = \"A\"\npartner = \"A\"", "own partner"},
		{"conflicting partners", "[[participants]]\nname = \"A\"\npartner = \"B\"\n[[participants]]\nname = \"B\"\npartner = \"C\"\n[[participants]]\nname = \"C\"", "already paired"},
		{"missing name", "[[participants]]\ntype = \"ADULT\"", "name or id required"},
		{"bad toml", "[event", "parsing budget file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trip.toml")
	if err := os.WriteFile(path, []byte(tripFile), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load failed: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}
