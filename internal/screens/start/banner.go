package start

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/chance/internal/ui/theme"
)

const bannerArt = ` ██████╗██╗  ██╗ █████╗ ███╗   ██╗ ██████╗███████╗
██╔════╝██║  ██║██╔══██╗████╗  ██║██╔════╝██╔════╝
██║     ███████║███████║██╔██╗ ██║██║     █████╗
██║     ██╔══██║██╔══██║██║╚██╗██║██║     ██╔══╝
╚██████╗██║  ██║██║  ██║██║ ╚████║╚██████╗███████╗
 ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚═╝  ╚═══╝ ╚═════╝╚══════╝`

const bannerCompact = "C H A N C E"

// RenderBanner returns the banner styled in the primary color, falling back
// to spaced letters below 56 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 56 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
