package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mmynk/eventbudget/internal/budget"
	"github.com/mmynk/eventbudget/internal/budgetfile"
	"github.com/mmynk/eventbudget/internal/cli"
	"github.com/mmynk/eventbudget/pkg/api"
)

var (
	flagPayers []string
	flagJSON   bool
)

var calcCmd = &cobra.Command{
	Use:   "calc <file.toml>",
	Short: "Calculate the budget of an event file",
	Args:  cobra.ExactArgs(1),
	RunE:  runCalc,
}

func init() {
	calcCmd.Flags().StringArrayVarP(&flagPayers, "payer", "p", nil, "Participant id that pays (repeatable; default: all adults)")
	calcCmd.Flags().BoolVar(&flagJSON, "json", false, "Print JSON instead of a table")
	rootCmd.AddCommand(calcCmd)
}

func runCalc(cmd *cobra.Command, args []string) error {
	plan, err := budgetfile.Load(args[0])
	if err != nil {
		return err
	}

	summary, err := plan.Summarize(flagPayers)
	if err != nil {
		return err
	}

	if flagJSON {
		return writeJSON(cmd.OutOrStdout(), plan, summary)
	}

	rows := make([]cli.BudgetRow, 0, len(plan.Participants))
	for _, p := range plan.Participants {
		rows = append(rows, cli.BudgetRow{
			Name:    plan.Names[p.ID],
			Type:    p.Type,
			Partner: plan.Names[p.PartnerID],
			Custom:  p.CustomBudget.Valid,
			Budget:  budget.FormatMoney(summary.ParticipantBudgets[p.ID]),
		})
	}

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), cli.RenderBudget(plan.Name, rows, summary))
	return nil
}

// writeJSON prints the summary in the same shape the server returns.
func writeJSON(w io.Writer, plan *budgetfile.Plan, summary budget.Summary) error {
	out := &api.BudgetSummary{
		TotalBudget:        budget.FormatMoney(summary.TotalBudget),
		BudgetPerPayer:     budget.FormatMoney(summary.BudgetPerPayer),
		NumberOfPayers:     int32(summary.NumberOfPayers),
		ParticipantBudgets: make([]*api.ParticipantBudget, 0, len(plan.Participants)),
	}
	for _, p := range plan.Participants {
		out.ParticipantBudgets = append(out.ParticipantBudgets, &api.ParticipantBudget{
			ParticipantID: p.ID,
			Name:          plan.Names[p.ID],
			Budget:        budget.FormatMoney(summary.ParticipantBudgets[p.ID]),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
