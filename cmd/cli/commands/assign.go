package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/workshop-groups/pkg/core/services"
	"github.com/jakechorley/workshop-groups/pkg/report"
)

// AssignCmd creates the assign command
func AssignCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign participants to groups from their ranked choices",
		Long: `Read the survey responses, place every participant in the highest ranked group
that still has room, and print the result. Unless --dry-run is given the result is
also published to the configured results sheet.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			byGroup, _ := cmd.Flags().GetBool("by-group")
			byCohort, _ := cmd.Flags().GetBool("by-cohort")

			opts := services.AssignOptions{DryRun: dryRun}
			if cmd.Flags().Changed("seed") {
				seed, _ := cmd.Flags().GetUint64("seed")
				opts.Seed = &seed
			}

			app.Logger.Debug("assign command",
				zap.String("file", file),
				zap.Bool("dry_run", dryRun),
				zap.Bool("seeded", opts.Seed != nil))

			source, err := app.responseSource(file)
			if err != nil {
				return err
			}

			var publisher services.AssignmentPublisher
			if !dryRun && app.Cfg.ResultsSheetID != "" {
				client, err := app.SheetsClient()
				if err != nil {
					return err
				}
				publisher = client
			}

			result, err := services.AssignGroups(app.Ctx, source, publisher, app.Cfg, app.Logger, opts)
			if result == nil {
				return fmt.Errorf("assignment failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if printErr := printAssignResult(out, result, dryRun, byGroup, byCohort, app); printErr != nil {
				return printErr
			}

			return err
		},
	}

	cmd.Flags().Uint64("seed", 0, "Seed for the processing order (random when not set)")
	cmd.Flags().String("file", "", "Read responses from a CSV export instead of the responses sheet")
	cmd.Flags().Bool("dry-run", false, "Run without publishing to the results sheet")
	cmd.Flags().Bool("by-group", false, "Only print the listing by group")
	cmd.Flags().Bool("by-cohort", false, "Only print the listing by cohort")

	return cmd
}

func printAssignResult(out io.Writer, result *services.AssignGroupsResult, dryRun, byGroup, byCohort bool, app *AppContext) error {
	outcome := result.Outcome

	fmt.Fprintf(out, "\n🎯 Group Assignment Results\n\n")
	fmt.Fprintf(out, "Run ID:      %s\n", result.RunID)
	fmt.Fprintf(out, "Seed:        %d\n", result.Seed)
	fmt.Fprintf(out, "Capacity:    %d per group\n", result.Capacity)
	fmt.Fprintf(out, "Ranks tried: %d\n", result.MaxRank)
	switch {
	case dryRun:
		fmt.Fprintf(out, "Mode:        🧪 DRY RUN (not published)\n")
	case result.Published:
		fmt.Fprintf(out, "Status:      ✅ PUBLISHED to tab %q\n", result.TabTitle)
	case outcome.Success:
		fmt.Fprintf(out, "Status:      ✅ SUCCESS (no results sheet configured)\n")
	default:
		fmt.Fprintf(out, "Status:      ❌ FAILED (not published)\n")
	}
	fmt.Fprintln(out)

	if len(outcome.ValidationErrors) > 0 {
		fmt.Fprintf(out, "⚠️  Validation Errors (%d):\n", len(outcome.ValidationErrors))
		for _, verr := range outcome.ValidationErrors {
			fmt.Fprintf(out, "  • %s\n", verr.Error())
		}
		fmt.Fprintln(out)
	}

	placedAt := outcome.RankCounts()
	for rank, count := range placedAt {
		if count > 0 {
			fmt.Fprintf(out, "Choice %d:    %d\n", rank+1, count)
		}
	}
	if len(outcome.Preassigned) > 0 {
		fmt.Fprintf(out, "Preassigned: %d\n", len(outcome.Preassigned))
	}
	fmt.Fprintf(out, "Unassigned:  %d\n\n", len(outcome.Unassigned))

	if err := report.WriteSummary(out, result.GroupNames, outcome.Occupancy, result.Capacity); err != nil {
		return err
	}
	fmt.Fprintln(out)

	// With neither flag both listings are printed
	showAll := !byGroup && !byCohort
	if byGroup || showAll {
		if err := report.WriteByGroup(out, result.GroupNames, result.Registry); err != nil {
			return err
		}
	}
	if byCohort || showAll {
		if err := report.WriteByCohort(out, result.GroupNames, result.Registry, app.Cfg.Cohorts); err != nil {
			return err
		}
	}

	return nil
}
