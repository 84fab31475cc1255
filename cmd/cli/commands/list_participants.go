package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jakechorley/workshop-groups/pkg/core/services"
	"github.com/jakechorley/workshop-groups/pkg/report"
)

// ListParticipantsCmd creates the listParticipants command
func ListParticipantsCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listParticipants",
		Short: "List survey respondents and their ranked choices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")

			source, err := app.responseSource(file)
			if err != nil {
				return err
			}

			result, err := services.ListParticipants(app.Ctx, source, app.Cfg, app.Logger)
			if err != nil {
				return fmt.Errorf("failed to list participants: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "\nFound %d participants choosing from %d groups:\n\n", result.Registry.Size(), len(result.GroupNames))
			for _, p := range result.Registry.All() {
				choices := make([]string, 0, len(p.Choices))
				for _, group := range p.Choices {
					choices = append(choices, result.GroupNames[group])
				}
				if len(choices) == 0 {
					choices = append(choices, "no choices")
				}
				fmt.Fprintf(out, "- %s (%s): %s\n", p.FullName(), report.Ordinal(p.Cohort), strings.Join(choices, ", "))
			}

			return nil
		},
	}

	cmd.Flags().String("file", "", "Read responses from a CSV export instead of the responses sheet")

	return cmd
}
