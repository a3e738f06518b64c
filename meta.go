package ot

import "github.com/google/uuid"

// newOperationID mints a correlation identifier for NewWithID. The engine
// never reads it back; it exists purely so an embedder can tag an operation
// before handing it to whatever outer system (not specified here) moves it
// between sites.
func newOperationID() uuid.UUID {
	return uuid.New()
}
