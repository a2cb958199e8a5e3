// Package entities defines the core domain models for the ride-sharing
// simulation (Rider, Driver, Location). They live in the innermost layer of
// the architecture and have no dependencies on databases, HTTP, or the
// simulation engine itself.
package entities

import (
	"fmt"
	"strconv"
	"strings"
)

// Location is a coordinate pair on the simulation's integer grid.
// It is a small immutable value and is passed around by value.
type Location struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// NewLocation creates a Location value from row and column coordinates.
func NewLocation(row, column int) Location {
	return Location{
		Row:    row,
		Column: column,
	}
}

// String renders the location in the "row,column" form used by event files.
func (l Location) String() string {
	return fmt.Sprintf("%d,%d", l.Row, l.Column)
}

// ParseLocation parses a "row,column" string into a Location.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("parse location %q: want row,column", s)
	}
	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: row: %w", s, err)
	}
	column, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return Location{}, fmt.Errorf("parse location %q: column: %w", s, err)
	}
	return Location{Row: row, Column: column}, nil
}

// ManhattanDistance returns the grid distance between two locations:
// the sum of the absolute row and column differences.
func ManhattanDistance(origin, destination Location) int {
	rowDistance := abs(origin.Row - destination.Row)
	columnDistance := abs(origin.Column - destination.Column)
	return rowDistance + columnDistance
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
