package domain

import "time"

// Section is one node of an owner's outline forest. Sections are stored
// flat; the tree is reconstructed by grouping on ParentID and sorting
// siblings by OrderIndex.
type Section struct {
	ID         string
	OwnerID    string
	ParentID   *string
	Title      string
	Summary    string
	OrderIndex int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
