package gridpath

import "errors"

var (
	// ErrInvalidCoordinate is returned when a start or target lies outside the grid.
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	// ErrInvalidBounds is returned for grids with a non-positive dimension.
	ErrInvalidBounds = errors.New("invalid grid bounds")
	// ErrExpansionLimit is returned when WithMaxExpansions cuts a search short.
	ErrExpansionLimit = errors.New("expansion limit reached")
	// ErrInvalidPath is returned by Bounds.CheckPath.
	ErrInvalidPath = errors.New("invalid path")
)
