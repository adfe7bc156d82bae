package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estatemap/internal/core/domain"
)

var showJSON bool

var showCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show registration details of a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "output details as JSON")
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("%w: project id %q", domain.ErrInvalidInput, args[0])
	}

	if projectService == nil {
		return errNoProjectService
	}

	details, err := projectService.Details(cmd.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("project %d not found", id)
	}
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	if showJSON {
		return outputJSON(cmd, details)
	}

	cmd.Println(details.ProjectName)
	cmd.Println()
	for _, row := range detailRows(details) {
		cmd.Printf("  %-22s %s\n", row[0]+":", orDash(row[1]))
	}
	return nil
}

// detailRows returns the labelled fields in display order.
func detailRows(d *domain.ProjectDetails) [][2]string {
	return [][2]string{
		{"Promoter", d.PromoterName},
		{"Status", d.ProjectStatus},
		{"RERA registration", d.RERARegistrationNumber},
		{"Water source", d.SourceOfWater},
		{"Approving authority", d.ApprovingAuthority},
		{"Start date", d.ProjectStartDate},
		{"Proposed completion", d.ProposedCompletionDate},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
