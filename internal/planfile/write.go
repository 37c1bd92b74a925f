package planfile

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/natefinch/atomic"

	"github.com/avermeer/scribe/internal/contract"
)

// FromSnapshot converts a planning snapshot back into the loadable document
// shape, so a dumped plan round-trips through Load.
func FromSnapshot(view *contract.PlanningView) *Document {
	doc := &Document{}
	for _, node := range view.Sections {
		doc.Outline = append(doc.Outline, nodeToSpec(node))
	}
	for _, phase := range view.Timeline {
		spec := contract.PhaseSpec{
			Title:     phase.Title,
			StartDate: phase.StartDate,
			EndDate:   phase.EndDate,
			Deadline:  phase.Deadline,
		}
		for _, task := range phase.Tasks {
			spec.Tasks = append(spec.Tasks, contract.TaskSpec{
				Description: task.Description,
				Completed:   task.Completed,
			})
		}
		doc.Timeline = append(doc.Timeline, spec)
	}
	return doc
}

func nodeToSpec(node contract.SectionNode) contract.SectionSpec {
	spec := contract.SectionSpec{Title: node.Title, Summary: node.Summary}
	for _, child := range node.Subsections {
		spec.Subsections = append(spec.Subsections, nodeToSpec(child))
	}
	return spec
}

// Save writes the document atomically so a crash mid-write never leaves a
// truncated plan on disk.
func Save(path string, doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	data = append(data, '\n')
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing plan file: %w", err)
	}
	return nil
}
