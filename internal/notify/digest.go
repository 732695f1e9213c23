package notify

import (
	"fmt"
	"strings"

	"github.com/Xaberico/monitor-empleo-santafe/internal/domain"
)

// digestCap bounds the per-message entry count; Telegram rejects messages
// over 4096 chars and a bootstrap run can easily carry the whole portal.
const digestCap = 10

// Digest renders the notification body: a header with the count, up to
// digestCap entries, and a trailing "y N más" line when truncated.
func Digest(newListings []domain.Listing) string {
	var b strings.Builder

	b.WriteString("🔔 *Nuevas Ofertas de Empleo - Santa Fe*\n")
	fmt.Fprintf(&b, "Se detectaron %d nueva(s) oferta(s)\n\n", len(newListings))

	shown := newListings
	if len(shown) > digestCap {
		shown = shown[:digestCap]
	}
	for i, l := range shown {
		fmt.Fprintf(&b, "%d. *%s*\n", i+1, l.Title)
		fmt.Fprintf(&b, "   📍 %s\n", l.Location)
		fmt.Fprintf(&b, "   🏢 %s\n", l.Employer)
		fmt.Fprintf(&b, "   🔗 [Ver oferta](%s)\n\n", l.URL)
	}

	if len(newListings) > digestCap {
		fmt.Fprintf(&b, "... y %d ofertas más.\n", len(newListings)-digestCap)
	}
	return b.String()
}
