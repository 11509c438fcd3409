// This file defines the solver Method abstraction and the registry through
// which the CLI, the orchestrator, and the HTTP server discover methods by
// name. Methods register themselves from init functions, so build tags can
// add or remove backends without touching the consumers.
package pell

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/agbru/pellcalc/pkg/models"
)

// Method is one strategy for computing the k-th solution of the Pell
// equation. All methods must produce bit-identical results for the same
// (D, k); the orchestrator enforces this when several run side by side.
type Method interface {
	// Name returns a descriptive, human-readable name for the method.
	Name() string

	// SolveAt computes the k-th solution for the discriminant d.
	// The reporter may be nil.
	//
	// Parameters:
	//   - ctx: The context for managing cancellation.
	//   - reporter: Receives normalized progress, may be nil.
	//   - d: The discriminant D.
	//   - k: The 1-based solution index.
	//
	// Returns:
	//   - models.Solution: The k-th solution.
	//   - error: A validation error, an InvalidIndexError, or the
	//     context error.
	SolveAt(ctx context.Context, reporter ProgressReporter, d uint64, k uint64) (models.Solution, error)
}

// MethodFactory provides named access to the registered solver methods.
type MethodFactory interface {
	// Get returns the method registered under key.
	Get(key string) (Method, error)
	// GetAll returns all registered methods keyed by name.
	GetAll() map[string]Method
	// List returns the registered keys in sorted order.
	List() []string
}

// defaultFactory is the registry-backed MethodFactory implementation.
type defaultFactory struct {
	mu      sync.RWMutex
	methods map[string]func() Method
}

var globalFactory = &defaultFactory{methods: make(map[string]func() Method)}

// RegisterMethod adds a method constructor to the global registry under the
// given key. Called from init functions; a duplicate key panics, since it
// indicates conflicting registrations at program start.
func RegisterMethod(key string, ctor func() Method) {
	globalFactory.mu.Lock()
	defer globalFactory.mu.Unlock()
	if _, exists := globalFactory.methods[key]; exists {
		panic(fmt.Sprintf("pell: method %q registered twice", key))
	}
	globalFactory.methods[key] = ctor
}

// GlobalFactory returns the process-wide method factory.
func GlobalFactory() MethodFactory {
	return globalFactory
}

// Get returns the method registered under key.
func (f *defaultFactory) Get(key string) (Method, error) {
	f.mu.RLock()
	ctor, ok := f.methods[key]
	f.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown solver method: %q", key)
	}
	return ctor(), nil
}

// GetAll returns fresh instances of every registered method.
func (f *defaultFactory) GetAll() map[string]Method {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]Method, len(f.methods))
	for key, ctor := range f.methods {
		out[key] = ctor()
	}
	return out
}

// List returns the registered keys in sorted order, for stable CLI output
// and reproducible "run all methods" behavior.
func (f *defaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	keys := make([]string, 0, len(f.methods))
	for key := range f.methods {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
