// Package export renders an outline forest as plain text or Markdown. The
// renderers are pure functions over the node views: no stored state, safe to
// call repeatedly with the same input.
package export

import (
	"errors"
	"sort"
	"strings"

	"github.com/avermeer/scribe/internal/contract"
)

// Format selects the output rendering.
type Format string

const (
	FormatPlain    Format = "plain"
	FormatMarkdown Format = "markdown"
)

// ErrUnknownFormat is returned for a format outside the supported set.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat validates a format string from the caller.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatPlain, FormatMarkdown:
		return Format(s), nil
	}
	return "", ErrUnknownFormat
}

// Render converts the forest to the requested format. An empty forest
// renders to an empty string.
func Render(forest []contract.SectionNode, format Format) (string, error) {
	switch format {
	case FormatPlain:
		return strings.Join(renderPlain(forest, 0), "\n"), nil
	case FormatMarkdown:
		return strings.Join(renderMarkdown(forest, 0), "\n\n"), nil
	}
	return "", ErrUnknownFormat
}

// renderPlain emits one indented bullet line per node, with the summary on
// its own further-indented line.
func renderPlain(nodes []contract.SectionNode, depth int) []string {
	var lines []string
	indent := strings.Repeat("  ", depth)
	for _, node := range sortedByOrder(nodes) {
		lines = append(lines, indent+"- "+node.Title)
		if node.Summary != "" {
			lines = append(lines, indent+"  "+node.Summary)
		}
		lines = append(lines, renderPlain(node.Subsections, depth+1)...)
	}
	return lines
}

// renderMarkdown emits a heading per node, deeper nodes getting deeper
// heading levels, with the summary as a following paragraph.
func renderMarkdown(nodes []contract.SectionNode, depth int) []string {
	var blocks []string
	for _, node := range sortedByOrder(nodes) {
		blocks = append(blocks, strings.Repeat("#", depth+1)+" "+node.Title)
		if node.Summary != "" {
			blocks = append(blocks, node.Summary)
		}
		blocks = append(blocks, renderMarkdown(node.Subsections, depth+1)...)
	}
	return blocks
}

// sortedByOrder re-sorts siblings by their order field rather than trusting
// arrival order. The sort is stable so equal orders keep their input order.
func sortedByOrder(nodes []contract.SectionNode) []contract.SectionNode {
	out := make([]contract.SectionNode, len(nodes))
	copy(out, nodes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Order < out[j].Order
	})
	return out
}
