package repository

import "errors"

// ErrNotFound is returned when an entity does not exist or is not owned by
// the requesting owner. The two cases are deliberately indistinguishable so
// that id probing cannot reveal another owner's entities.
var ErrNotFound = errors.New("not found")
