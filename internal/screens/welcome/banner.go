package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/careerpath/advisor/internal/ui/theme"
)

const bannerArt = `
  █████╗ ██████╗ ██╗   ██╗██╗███████╗ ██████╗ ██████╗
 ██╔══██╗██╔══██╗██║   ██║██║██╔════╝██╔═══██╗██╔══██╗
 ███████║██║  ██║██║   ██║██║███████╗██║   ██║██████╔╝
 ██╔══██║██║  ██║╚██╗ ██╔╝██║╚════██║██║   ██║██╔══██╗
 ██║  ██║██████╔╝ ╚████╔╝ ██║███████║╚██████╔╝██║  ██║
 ╚═╝  ╚═╝╚═════╝   ╚═══╝  ╚═╝╚══════╝ ╚═════╝ ╚═╝  ╚═╝`

const bannerCompact = "A D V I S O R"

// RenderBanner returns the banner in the primary color, or a compact
// fallback for terminals narrower than 58 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 58 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
