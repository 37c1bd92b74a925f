package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avermeer/scribe/internal/contract"
	"github.com/avermeer/scribe/internal/db"
	"github.com/avermeer/scribe/internal/domain"
	"github.com/avermeer/scribe/internal/repository"
	"github.com/google/uuid"
)

type outlineService struct {
	sections repository.SectionRepo
	uow      db.UnitOfWork
	locks    *OwnerLocks
}

// NewOutlineService creates the outline service. The locks registry should
// be shared with the timeline service so same-owner writes serialize across
// both stores.
func NewOutlineService(sections repository.SectionRepo, uow db.UnitOfWork, locks *OwnerLocks) OutlineService {
	return &outlineService{sections: sections, uow: uow, locks: locks}
}

func (s *outlineService) ReplaceTree(ctx context.Context, owner string, specs []contract.SectionSpec) ([]contract.SectionNode, error) {
	if len(specs) == 0 {
		return nil, ErrEmptyOutline
	}
	if err := validateSectionSpecs(specs, "sections"); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSections := repository.NewSQLiteSectionRepo(tx)
		if err := txSections.DeleteByOwner(ctx, owner); err != nil {
			return err
		}
		return createSectionLevel(ctx, txSections, owner, nil, specs)
	})
	if err != nil {
		return nil, fmt.Errorf("replacing outline: %w", err)
	}

	return s.GetTree(ctx, owner)
}

// createSectionLevel persists one sibling level in input order, descending
// depth-first. Each node is inserted before its subsections so children can
// reference the parent id immediately.
func createSectionLevel(ctx context.Context, repo repository.SectionRepo, owner string, parentID *string, specs []contract.SectionSpec) error {
	now := time.Now().UTC()
	for i, spec := range specs {
		sec := &domain.Section{
			ID:         uuid.New().String(),
			OwnerID:    owner,
			ParentID:   parentID,
			Title:      spec.Title,
			Summary:    spec.Summary,
			OrderIndex: i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := repo.Create(ctx, sec); err != nil {
			return err
		}
		if err := createSectionLevel(ctx, repo, owner, &sec.ID, spec.Subsections); err != nil {
			return err
		}
	}
	return nil
}

func validateSectionSpecs(specs []contract.SectionSpec, path string) error {
	for i, spec := range specs {
		field := fmt.Sprintf("%s[%d]", path, i)
		if strings.TrimSpace(spec.Title) == "" {
			return validationErrorf(field+".title", "title is required")
		}
		if err := validateSectionSpecs(spec.Subsections, field+".subsections"); err != nil {
			return err
		}
	}
	return nil
}

func (s *outlineService) GetTree(ctx context.Context, owner string) ([]contract.SectionNode, error) {
	all, err := s.sections.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading outline: %w", err)
	}
	return buildForest(all), nil
}

func (s *outlineService) GetSubtree(ctx context.Context, owner, id string) (*contract.SectionNode, error) {
	// Verify ownership before assembling anything.
	if _, err := s.sections.GetByID(ctx, owner, id); err != nil {
		return nil, err
	}
	all, err := s.sections.ListByOwner(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("loading outline: %w", err)
	}
	node := findNode(buildForest(all), id)
	if node == nil {
		return nil, fmt.Errorf("section: %w", repository.ErrNotFound)
	}
	return node, nil
}

func (s *outlineService) CreateSection(ctx context.Context, owner string, spec contract.SectionCreate) (*contract.SectionNode, error) {
	if strings.TrimSpace(spec.Title) == "" {
		return nil, validationErrorf("title", "title is required")
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	var created *domain.Section
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSections := repository.NewSQLiteSectionRepo(tx)
		if spec.ParentID != nil {
			if _, err := txSections.GetByID(ctx, owner, *spec.ParentID); err != nil {
				return err
			}
		}
		now := time.Now().UTC()
		created = &domain.Section{
			ID:         uuid.New().String(),
			OwnerID:    owner,
			ParentID:   spec.ParentID,
			Title:      spec.Title,
			Summary:    spec.Summary,
			OrderIndex: spec.Order,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		return txSections.Create(ctx, created)
	})
	if err != nil {
		return nil, err
	}

	node := sectionToNode(created)
	return &node, nil
}

func (s *outlineService) UpdateSection(ctx context.Context, owner, id string, patch contract.SectionPatch) (*contract.SectionNode, error) {
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return nil, validationErrorf("title", "title cannot be empty")
	}

	unlock := s.locks.Lock(owner)
	defer unlock()

	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSections := repository.NewSQLiteSectionRepo(tx)
		sec, err := txSections.GetByID(ctx, owner, id)
		if err != nil {
			return err
		}

		if patch.Title != nil {
			sec.Title = *patch.Title
		}
		if patch.Summary != nil {
			sec.Summary = *patch.Summary
		}
		if patch.Order != nil {
			sec.OrderIndex = *patch.Order
		}
		if patch.Parent != nil {
			if patch.Parent.ID == "" {
				sec.ParentID = nil
			} else {
				if err := checkNoCycle(ctx, txSections, owner, id, patch.Parent.ID); err != nil {
					return err
				}
				parentID := patch.Parent.ID
				sec.ParentID = &parentID
			}
		}

		sec.UpdatedAt = time.Now().UTC()
		return txSections.Update(ctx, sec)
	})
	if err != nil {
		return nil, err
	}

	return s.GetSubtree(ctx, owner, id)
}

// checkNoCycle rejects reparenting a section under itself or any of its
// descendants, which would make tree traversal non-terminating. The walk
// runs inside the update transaction so the ancestor chain cannot shift
// underneath it.
func checkNoCycle(ctx context.Context, repo repository.SectionRepo, owner, id, newParentID string) error {
	if newParentID == id {
		return validationErrorf("parent_id", "section cannot be its own parent")
	}
	current := newParentID
	for {
		anc, err := repo.GetByID(ctx, owner, current)
		if err != nil {
			return err
		}
		if anc.ParentID == nil {
			return nil
		}
		if *anc.ParentID == id {
			return validationErrorf("parent_id", "section cannot be moved under its own subtree")
		}
		current = *anc.ParentID
	}
}

func (s *outlineService) DeleteSection(ctx context.Context, owner, id string) error {
	unlock := s.locks.Lock(owner)
	defer unlock()
	return s.sections.Delete(ctx, owner, id)
}

// buildForest reconstructs the nested view from the flat section list. The
// input arrives ordered by order_index, so each sibling group stays sorted
// as it is bucketed by parent.
func buildForest(sections []*domain.Section) []contract.SectionNode {
	children := make(map[string][]*domain.Section)
	var roots []*domain.Section
	for _, sec := range sections {
		if sec.ParentID == nil {
			roots = append(roots, sec)
		} else {
			children[*sec.ParentID] = append(children[*sec.ParentID], sec)
		}
	}

	var build func(secs []*domain.Section) []contract.SectionNode
	build = func(secs []*domain.Section) []contract.SectionNode {
		nodes := make([]contract.SectionNode, 0, len(secs))
		for _, sec := range secs {
			node := sectionToNode(sec)
			node.Subsections = build(children[sec.ID])
			nodes = append(nodes, node)
		}
		return nodes
	}
	return build(roots)
}

func sectionToNode(sec *domain.Section) contract.SectionNode {
	return contract.SectionNode{
		ID:          sec.ID,
		Title:       sec.Title,
		Summary:     sec.Summary,
		Order:       sec.OrderIndex,
		Subsections: []contract.SectionNode{},
	}
}

func findNode(nodes []contract.SectionNode, id string) *contract.SectionNode {
	for i := range nodes {
		if nodes[i].ID == id {
			return &nodes[i]
		}
		if found := findNode(nodes[i].Subsections, id); found != nil {
			return found
		}
	}
	return nil
}
