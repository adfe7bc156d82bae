package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/estatemap/internal/core/domain"
	"github.com/custodia-labs/estatemap/internal/geo"
)

var (
	searchLimit   int
	searchJSON    bool
	searchGeoJSON bool
	searchYAML    bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search registered projects",
	Long: `Searches the project register by keyword.

Every word of the query must match the project name, promoter, district,
taluk, approving authority or water source. Common words such as "show",
"projects", "villas" or "in" are ignored, so "villas in Whitefield" matches
approved projects in Whitefield.`,
	Example: `  estatemap search villas in Whitefield
  estatemap search --geojson "projects by Prestige" > prestige.geojson`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum number of results to print (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().BoolVar(&searchGeoJSON, "geojson", false, "output results as a GeoJSON FeatureCollection")
	searchCmd.Flags().BoolVar(&searchYAML, "yaml", false, "output results as YAML")
	searchCmd.MarkFlagsMutuallyExclusive("json", "geojson", "yaml")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if projectService == nil {
		return errNoProjectService
	}

	results, err := projectService.Search(cmd.Context(), query)
	if errors.Is(err, domain.ErrValidation) {
		return err
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	switch {
	case searchGeoJSON:
		return outputSearchGeoJSON(cmd, results)
	case searchJSON:
		return outputJSON(cmd, limitResults(results, searchLimit))
	case searchYAML:
		return outputYAML(cmd, limitResults(results, searchLimit))
	}

	return outputSearchTable(cmd, results)
}

func limitResults(results domain.ResultSet, limit int) domain.ResultSet {
	if limit > 0 && results.Len() > limit {
		return results[:limit]
	}
	return results
}

func outputJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputYAML(cmd *cobra.Command, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Print(string(data))
	return nil
}

// outputSearchGeoJSON writes every result, framed by the fitted viewport.
func outputSearchGeoJSON(cmd *cobra.Command, results domain.ResultSet) error {
	if viewportFitter == nil {
		return errors.New("viewport policy not configured")
	}
	return outputJSON(cmd, geo.FeatureCollection(results, viewportFitter.Compute(results), nil))
}

func outputSearchTable(cmd *cobra.Command, results domain.ResultSet) error {
	if results.Len() == 0 {
		cmd.Println("No projects found.")
		return nil
	}

	shown := limitResults(results, searchLimit)

	cmd.Printf("Projects (%d):\n", results.Len())
	cmd.Println()
	for i, p := range shown {
		// Format: [N] Name  #id  (lat, lon)
		cmd.Printf("  [%d] %s  #%d\n", i+1, p.Name, p.ID)
		cmd.Printf("      %s\n", p.Position())
	}
	if hidden := results.Len() - shown.Len(); hidden > 0 {
		cmd.Println()
		cmd.Printf("  ... %d more (use --limit 0 to show all)\n", hidden)
	}

	if viewportFitter != nil {
		vp := viewportFitter.Compute(results)
		cmd.Println()
		cmd.Printf("Map: centre %s, zoom %d\n", vp.Center, vp.Zoom)
	}

	return nil
}
