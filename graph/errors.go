package graph

import "errors"

// ErrConfiguration is returned for inputs that make routing impossible, such
// as a malformed edge or an empty facility list. It is fatal for a run.
var ErrConfiguration = errors.New("configuration error")

// ErrNoNodeFound is returned when a coordinate cannot be mapped to a node.
var ErrNoNodeFound = errors.New("no node found")
