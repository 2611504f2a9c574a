package getconf

import (
	"fmt"
	"strings"
)

var docLineCollapser = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Template renders the keys seen so far as a commented configuration-file
// skeleton, grouped by section and sorted by section then entry. Each key
// gets a comment line naming the deriving environment variable, the type
// and the documentation string, followed by a commented "entry = default"
// line. Uncommenting the entry lines yields a file that reproduces the
// documented defaults when parsed back.
func (g *Getter) Template() string {
	var b strings.Builder

	current := ""
	first := true
	for _, key := range g.ListKeys() {
		if first || key.Section != current {
			if !first {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "[%s]\n", key.Section)
			current = key.Section
			first = false
		}

		comment := fmt.Sprintf("# %s (%s)", key.EnvVar, key.Type)
		if doc := strings.TrimSpace(docLineCollapser.Replace(key.Doc)); doc != "" {
			comment += " - " + doc
		}
		b.WriteString(comment + "\n")
		fmt.Fprintf(&b, "# %s = %s\n", key.Entry, key.Default)
	}

	return b.String()
}
