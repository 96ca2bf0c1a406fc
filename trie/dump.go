package trie

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// DebugString renders the structure of t for debugging: one line per
// node, indented by depth, children ordered by byte. Printable bytes
// are shown as characters, others in hex. The rendering is
// deterministic but is not a serialization format.
func DebugString(t Trie) string {
	if t.root == nil {
		return "(empty)\n"
	}
	var sb strings.Builder
	writeNode(&sb, t.root, ".", 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, n node, label string, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	sb.WriteString(label)
	if v, ok := n.valueAny(); ok {
		fmt.Fprintf(sb, " = %v", v)
	}
	sb.WriteByte('\n')
	for _, b := range slices.Sorted(maps.Keys(n.childMap())) {
		c, _ := n.child(b)
		writeNode(sb, c, byteLabel(b), depth+1)
	}
}

func byteLabel(b byte) string {
	if b >= 0x21 && b <= 0x7e {
		return string(rune(b))
	}
	return fmt.Sprintf("0x%02x", b)
}
