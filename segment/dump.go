package segment

import (
	"fmt"
	"strconv"
	"strings"
)

// Dump writes human readable tree of parsed text, one node per line indented
// by depth. Used to troubleshoot annotation markup.
func (d Duration) Dump(b *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range d.Nodes {
		b.WriteString(indent)
		b.WriteString(n.Kind.String())
		b.WriteString(": ")
		b.WriteString(strconv.Quote(n.Text))
		if n.HasBadge {
			fmt.Fprintf(b, " badge=%s", strconv.Quote(n.Badge))
		}
		b.WriteByte('\n')
	}
}
