package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/avermeer/scribe/internal/contract"
)

func sampleForest() []contract.SectionNode {
	return []contract.SectionNode{
		{
			ID: "11111111-aaaa", Title: "Introduction", Summary: "why this matters",
			Subsections: []contract.SectionNode{
				{ID: "22222222-bbbb", Title: "Background", Subsections: []contract.SectionNode{}},
				{ID: "33333333-cccc", Title: "Related Work", Subsections: []contract.SectionNode{}},
			},
		},
		{ID: "44444444-dddd", Title: "Method", Subsections: []contract.SectionNode{}},
	}
}

func TestFormatOutline_Empty(t *testing.T) {
	got := FormatOutline(nil)
	assert.Contains(t, got, "No outline yet")
}

func TestFormatOutline_TreeStructure(t *testing.T) {
	got := FormatOutline(sampleForest())

	assert.Contains(t, got, "Introduction")
	assert.Contains(t, got, "why this matters")
	assert.Contains(t, got, "Method")

	// Connectors: Background is a middle child, Related Work the last.
	assert.Contains(t, got, treeBranch+"Background")
	assert.Contains(t, got, treeCorner+"Related Work")

	// Ids are truncated to 8 chars.
	assert.Contains(t, got, "11111111")
	assert.NotContains(t, got, "11111111-aaaa")
}

func TestFormatOutline_RootsNotIndented(t *testing.T) {
	got := FormatOutline(sampleForest())
	lines := strings.Split(got, "\n")
	assert.True(t, strings.HasPrefix(lines[0], "Introduction"))
}

func TestFormatSection_SingleSubtree(t *testing.T) {
	forest := sampleForest()
	got := FormatSection(&forest[0])
	assert.Contains(t, got, "Introduction")
	assert.Contains(t, got, "Background")
	assert.NotContains(t, got, "Method")
}
