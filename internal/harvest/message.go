package harvest

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/DarkFrame_Go/internal/domain"
)

var (
	printer = message.NewPrinter(language.English)
	titler  = cases.Title(language.English)
)

// formatHarvestMessage renders the player-facing result, e.g. "Harvested 1,234 Metal"
func formatHarvestMessage(kind domain.ResourceKind, amount int, crowdPct float64) string {
	name := titler.String(string(kind))
	if crowdPct > 0 {
		return printer.Sprintf("Harvested %d %s (+%.1f%% crowd bonus)", amount, name, crowdPct)
	}
	return printer.Sprintf("Harvested %d %s", amount, name)
}
