// Package handoff builds the outbound link to the external skill assessment.
package handoff

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/careerpath/advisor/internal/role"
)

// DefaultBase is the path of the external assessment flow.
const DefaultBase = "/skill-assessment"

// URL returns base with roleId and roleName query parameters. Both values
// are escaped, with spaces as %20.
func URL(base string, sel role.Selection) string {
	if base == "" {
		base = DefaultBase
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "roleId=" + escape(sel.ID) + "&roleName=" + escape(sel.Name)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Navigator leaves the funnel for url. Implementations must not block the
// caller waiting on the destination.
type Navigator interface {
	Navigate(url string)
}

// Func adapts a function to Navigator.
type Func func(url string)

func (f Func) Navigate(url string) { f(url) }

// WriterNavigator prints the destination for the user to open.
type WriterNavigator struct {
	W io.Writer
}

func (n WriterNavigator) Navigate(url string) {
	if n.W == nil {
		return
	}
	fmt.Fprintf(n.W, "Continue your skill assessment at: %s\n", url)
}

// Discard ignores navigation.
var Discard Navigator = Func(func(string) {})
