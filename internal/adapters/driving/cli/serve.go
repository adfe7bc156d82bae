package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the project catalogue over HTTP",
	Long: `Start the HTTP API that remote estatemap clients search against.

Endpoints:
  POST /api/projects           {"query": "..."} -> matching projects
  GET  /api/project/{id}       project details
  GET  /api/projects.geojson   ?q=... results as GeoJSON
  GET  /health                 liveness
  GET  /metrics                Prometheus metrics

The listen address and per-IP rate limit default to the server.addr and
server.requests_per_minute settings.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from settings)")
	serveCmd.Flags().Int("rate", -1, "requests per minute per client IP, 0 disables (default from settings)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if projectService == nil {
		return errNoProjectService
	}
	if settingsService == nil {
		return errNoSettingsService
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	addr, err := cmd.Flags().GetString("addr")
	if err != nil {
		return fmt.Errorf("getting addr flag: %w", err)
	}
	if addr == "" {
		addr = settings.Server.Addr
	}

	rpm, err := cmd.Flags().GetInt("rate")
	if err != nil {
		return fmt.Errorf("getting rate flag: %w", err)
	}
	if rpm < 0 {
		rpm = settings.Server.RequestsPerMinute
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Projects: projectService,
		Viewport: viewportFitter,
	}, httpapi.Options{RequestsPerMinute: rpm})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s\n", displayAddr(addr))
	return server.Run(cmd.Context(), addr)
}

// displayAddr turns ":5000" into "localhost:5000".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
