/*
Package models defines the shared data structures exchanged between the
solver core, the CLI, and the HTTP API.

Solution coordinates are arbitrary-precision integers that outgrow the
float64-safe integer range almost immediately, so the JSON representation
uses decimal strings rather than JSON numbers.
*/
package models

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// Solution is one integer solution (x, y) of the Pell equation
// x² − D·y² = 1. Solutions are totally ordered by x (equivalently by y,
// equivalently by their 1-based index k).
type Solution struct {
	// X is the x coordinate.
	X *big.Int
	// Y is the y coordinate.
	Y *big.Int
}

// NewSolution builds a Solution from fresh copies of x and y, so later
// mutation of the inputs cannot corrupt the pair.
func NewSolution(x, y *big.Int) Solution {
	return Solution{X: new(big.Int).Set(x), Y: new(big.Int).Set(y)}
}

// Clone returns a deep copy of the solution.
func (s Solution) Clone() Solution {
	return NewSolution(s.X, s.Y)
}

// Equal reports whether two solutions hold identical coordinates.
func (s Solution) Equal(other Solution) bool {
	return s.X != nil && other.X != nil && s.X.Cmp(other.X) == 0 &&
		s.Y != nil && other.Y != nil && s.Y.Cmp(other.Y) == 0
}

// String renders the solution as "(x, y)" in decimal.
func (s Solution) String() string {
	return fmt.Sprintf("(%s, %s)", s.X.String(), s.Y.String())
}

// solutionJSON is the wire form of a Solution.
type solutionJSON struct {
	X string `json:"x"`
	Y string `json:"y"`
}

// MarshalJSON encodes the solution with decimal-string coordinates.
func (s Solution) MarshalJSON() ([]byte, error) {
	return json.Marshal(solutionJSON{X: s.X.String(), Y: s.Y.String()})
}

// UnmarshalJSON decodes a solution from decimal-string coordinates.
func (s *Solution) UnmarshalJSON(data []byte) error {
	var raw solutionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	x, ok := new(big.Int).SetString(raw.X, 10)
	if !ok {
		return fmt.Errorf("invalid x coordinate: %q", raw.X)
	}
	y, ok := new(big.Int).SetString(raw.Y, 10)
	if !ok {
		return fmt.Errorf("invalid y coordinate: %q", raw.Y)
	}
	s.X, s.Y = x, y
	return nil
}

// SolveResponse is the HTTP API response for a single-solution request.
type SolveResponse struct {
	// D is the discriminant of the solved equation.
	D uint64 `json:"d"`
	// K is the 1-based solution index.
	K uint64 `json:"k"`
	// Method is the solver method that produced the result.
	Method string `json:"method"`
	// Duration is the human-readable solve time.
	Duration string `json:"duration"`
	// Solution holds the result; omitted when an error occurred.
	Solution *Solution `json:"solution,omitempty"`
	// Digits is the decimal digit count of the x coordinate.
	Digits int `json:"digits,omitempty"`
	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`
}

// SolutionsResponse is the HTTP API response for a batch request.
type SolutionsResponse struct {
	// D is the discriminant of the solved equation.
	D uint64 `json:"d"`
	// Count is the number of solutions requested.
	Count int `json:"count"`
	// Duration is the human-readable solve time.
	Duration string `json:"duration"`
	// Solutions holds the first Count solutions in increasing order.
	Solutions []Solution `json:"solutions,omitempty"`
	// Error is the failure message, if any.
	Error string `json:"error,omitempty"`
}

// ErrorResponse is the standardized HTTP API error payload.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message describes what went wrong.
	Message string `json:"message"`
}
