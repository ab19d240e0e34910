package diag

import (
	"fmt"
	"strings"
)

// NoIssuesMessage is shown when a check finds nothing.
const NoIssuesMessage = "Ni pravopisnih napak."

// Summary renders the one-line Slovenian report, e.g.
// "Najdeno: 2 slovnični napaki in 5 pravopisnih napak."
func Summary(grammar, spelling int) string {
	parts := make([]string, 0, 2)
	if grammar > 0 {
		parts = append(parts, countPhrase(grammar, "slovničn"))
	}
	if spelling > 0 {
		parts = append(parts, countPhrase(spelling, "pravopisn"))
	}
	if len(parts) == 0 {
		return NoIssuesMessage
	}
	return "Najdeno: " + strings.Join(parts, " in ") + "."
}

// countPhrase agrees "<n> <adjective> napaka" with n. Slovenian has four
// forms chosen by the last two digits: 1, 2, 3-4, everything else.
func countPhrase(n int, stem string) string {
	var adj, noun string
	switch n % 100 {
	case 1:
		adj, noun = "a", "napaka"
	case 2:
		adj, noun = "i", "napaki"
	case 3, 4:
		adj, noun = "e", "napake"
	default:
		adj, noun = "ih", "napak"
	}
	return fmt.Sprintf("%d %s%s %s", n, stem, adj, noun)
}
