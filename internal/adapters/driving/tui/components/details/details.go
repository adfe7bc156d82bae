// Package details renders the selected project's attributes.
package details

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/estatemap/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/estatemap/internal/core/domain"
)

// Field is one labelled row of the panel.
type Field struct {
	Label string
	Value string
}

// Fields lists the displayed attributes of d in display order.
func Fields(d *domain.ProjectDetails) []Field {
	if d == nil {
		return nil
	}
	return []Field{
		{"Promoter", d.PromoterName},
		{"Status", d.ProjectStatus},
		{"RERA No.", d.RERARegistrationNumber},
		{"Water", d.SourceOfWater},
		{"Authority", d.ApprovingAuthority},
		{"Start", d.ProjectStartDate},
		{"Completion", d.ProposedCompletionDate},
	}
}

// Panel shows the selection: a placeholder, a loading line, an error or
// the loaded details.
type Panel struct {
	styles    *styles.Styles
	selection domain.Selection
	name      string
	width     int
}

// NewPanel creates a details panel.
func NewPanel(s *styles.Styles) *Panel {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Panel{styles: s, width: 40}
}

// Init initialises the panel.
func (p *Panel) Init() tea.Cmd {
	return nil
}

// SetSnapshot takes the selection from a snapshot. The project name comes
// from the result set so it shows while details are still loading.
func (p *Panel) SetSnapshot(snap domain.Snapshot) {
	p.selection = snap.Selection
	p.name = ""
	if id, ok := snap.Selection.ID(); ok {
		if proj, found := snap.Results.Find(id); found {
			p.name = proj.Name
		}
	}
}

// SetWidth sets the panel width.
func (p *Panel) SetWidth(width int) {
	p.width = max(width, 20)
}

// View renders the panel.
func (p *Panel) View() string {
	sel := p.selection
	switch sel.Status {
	case domain.SelectionLoading:
		return p.header() + "\n" + p.styles.Muted.Render("Loading details...")
	case domain.SelectionFailed:
		msg := "details unavailable"
		if sel.Err != nil {
			msg = sel.Err.Error()
		}
		return p.header() + "\n" + p.styles.Error.Render(msg) + "\n" +
			p.styles.Help.Render("enter to retry")
	case domain.SelectionLoaded:
		return p.renderLoaded()
	default:
		return p.styles.Muted.Render("Select a project to see its details.")
	}
}

func (p *Panel) header() string {
	name := p.name
	if name == "" {
		if id, ok := p.selection.ID(); ok {
			name = fmt.Sprintf("Project #%d", id)
		}
	}
	return p.styles.Subtitle.Render(truncate(name, p.width))
}

func (p *Panel) renderLoaded() string {
	d := p.selection.Details
	if d == nil {
		return p.header()
	}

	title := d.ProjectName
	if title == "" {
		title = p.name
	}

	lines := []string{p.styles.Subtitle.Render(truncate(title, p.width)), ""}
	for _, f := range Fields(d) {
		value := f.Value
		if value == "" {
			value = "-"
		}
		label := p.styles.Muted.Render(fmt.Sprintf("%-11s", f.Label))
		lines = append(lines, label+" "+p.styles.Normal.Render(truncate(value, p.width-12)))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 4 || len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
