package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/avasek/skyhook/pkg/types"
)

var (
	summaryBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	summaryLabel = lipgloss.NewStyle().
			Bold(true).
			Width(12)
)

// renderSummary renders the collected fields with the secret masked.
// The secret value itself never reaches the terminal.
func renderSummary(req Request, fields Fields) string {
	var rows []string

	add := func(label, value string) {
		if value == "" {
			value = "(empty)"
		}
		rows = append(rows, fmt.Sprintf("%s %s", summaryLabel.Render(label), value))
	}

	add(req.AddressLabel, fields.Address)
	if req.WantShare {
		add("Share", fields.Share)
	}
	add("Mount point", fields.MountPoint)
	add("Username", fields.Username)

	mask := "(empty)"
	if fields.Secret != "" {
		mask = types.SecretPlaceholder
	}
	add("Password", mask)

	return summaryBox.Render(strings.Join(rows, "\n"))
}
