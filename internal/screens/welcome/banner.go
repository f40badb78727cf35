package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/bhavita-mandapati/NetSec-Quiz-Agent-11/internal/ui/theme"
)

const bannerArt = `
 ███╗   ██╗███████╗████████╗███████╗███████╗ ██████╗
 ████╗  ██║██╔════╝╚══██╔══╝██╔════╝██╔════╝██╔════╝
 ██╔██╗ ██║█████╗     ██║   ███████╗█████╗  ██║
 ██║╚██╗██║██╔══╝     ██║   ╚════██║██╔══╝  ██║
 ██║ ╚████║███████╗   ██║   ███████║███████╗╚██████╗
 ╚═╝  ╚═══╝╚══════╝   ╚═╝   ╚══════╝╚══════╝ ╚═════╝`

const bannerCompact = "N E T S E C"

// bannerMinWidth is the narrowest terminal that fits bannerArt.
const bannerMinWidth = 56

// RenderBanner returns the NETSEC banner styled in the primary color, or a
// compact fallback on narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
