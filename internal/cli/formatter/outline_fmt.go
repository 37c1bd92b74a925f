package formatter

import (
	"strings"

	"github.com/avermeer/scribe/internal/contract"
)

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "
)

// FormatOutline renders a section forest as an indented tree using
// box-drawing connectors, with dimmed ids and summaries.
func FormatOutline(sections []contract.SectionNode) string {
	if len(sections) == 0 {
		return Dim("No outline yet. Use 'scribe outline load' or 'scribe outline add'.")
	}

	var b strings.Builder
	for i, node := range sections {
		writeOutlineNode(&b, node, "", i == len(sections)-1, true)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeOutlineNode(b *strings.Builder, node contract.SectionNode, prefix string, isLast, isRoot bool) {
	connector := treeBranch
	childPrefix := prefix + treePipe
	if isLast {
		connector = treeCorner
		childPrefix = prefix + treeBlank
	}
	if isRoot {
		connector = ""
		childPrefix = treeBlank
	}

	line := prefix + connector + Bold(node.Title) + "  " + TruncID(node.ID)
	b.WriteString(line + "\n")
	if node.Summary != "" {
		b.WriteString(childPrefix + Dim(node.Summary) + "\n")
	}

	for i, child := range node.Subsections {
		writeOutlineNode(b, child, childPrefix, i == len(node.Subsections)-1, false)
	}
}

// FormatSection renders a single subtree.
func FormatSection(node *contract.SectionNode) string {
	return FormatOutline([]contract.SectionNode{*node})
}
