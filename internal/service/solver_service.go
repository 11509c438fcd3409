// Package service contains the transport-independent solving logic shared
// by the HTTP server and other embedders.
package service

import (
	"context"
	"errors"

	"github.com/agbru/pellcalc/internal/pell"
	"github.com/agbru/pellcalc/pkg/models"
)

var (
	// ErrMaxDiscriminantExceeded is returned when D exceeds the configured
	// maximum limit.
	ErrMaxDiscriminantExceeded = errors.New("maximum discriminant value exceeded")
	// ErrMaxCountExceeded is returned when a batch request asks for more
	// solutions than the configured maximum.
	ErrMaxCountExceeded = errors.New("maximum solution count exceeded")
)

// Service defines the interface for Pell equation solving services.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Solve computes the k-th solution of x² − D·y² = 1 using the named
	// method.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - methodName: The name of the solver method to use.
	//   - d: The discriminant D.
	//   - k: The 1-based solution index.
	//
	// Returns:
	//   - models.Solution: The solution pair.
	//   - error: An error if validation or solving fails.
	Solve(ctx context.Context, methodName string, d, k uint64) (models.Solution, error)

	// Solutions computes the first count solutions for the discriminant d.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - d: The discriminant D.
	//   - count: The number of solutions to generate.
	//
	// Returns:
	//   - []models.Solution: The solutions, ordered by index.
	//   - error: An error if validation or solving fails.
	Solutions(ctx context.Context, d uint64, count int) ([]models.Solution, error)
}

// SolverService handles the core logic for solving Pell equations.
// It centralizes validation, method retrieval, and resource limits.
// Implements the Service interface.
type SolverService struct {
	factory  pell.MethodFactory
	maxD     uint64
	maxCount int
}

// Ensure SolverService implements Service interface.
var _ Service = (*SolverService)(nil)

// NewSolverService creates a new instance of SolverService.
//
// Parameters:
//   - factory: The factory to retrieve solver methods from.
//   - maxD: The maximum allowed discriminant (0 for no limit).
//   - maxCount: The maximum allowed batch size (0 for no limit).
func NewSolverService(factory pell.MethodFactory, maxD uint64, maxCount int) *SolverService {
	return &SolverService{
		factory:  factory,
		maxD:     maxD,
		maxCount: maxCount,
	}
}

// Solve retrieves the requested method and executes it. It also performs
// validation on the discriminant limit.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - methodName: The name of the solver method to use.
//   - d: The discriminant D.
//   - k: The 1-based solution index.
//
// Returns:
//   - models.Solution: The solution pair.
//   - error: An error if validation or solving fails.
func (s *SolverService) Solve(ctx context.Context, methodName string, d, k uint64) (models.Solution, error) {
	if s.maxD > 0 && d > s.maxD {
		return models.Solution{}, ErrMaxDiscriminantExceeded
	}

	method, err := s.factory.Get(methodName)
	if err != nil {
		return models.Solution{}, err
	}

	// A nil reporter: progress updates are not needed for synchronous
	// service usage.
	return method.SolveAt(ctx, nil, d, k)
}

// Solutions computes the first count solutions for the discriminant d,
// enforcing the configured limits.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - d: The discriminant D.
//   - count: The number of solutions to generate.
//
// Returns:
//   - []models.Solution: The solutions, ordered by index.
//   - error: An error if validation or solving fails.
func (s *SolverService) Solutions(ctx context.Context, d uint64, count int) ([]models.Solution, error) {
	if s.maxD > 0 && d > s.maxD {
		return nil, ErrMaxDiscriminantExceeded
	}
	if s.maxCount > 0 && count > s.maxCount {
		return nil, ErrMaxCountExceeded
	}
	return pell.Solutions(ctx, d, count)
}
