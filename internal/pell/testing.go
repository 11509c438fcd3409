package pell

import (
	"context"

	"github.com/agbru/pellcalc/pkg/models"
)

// MockMethod is a mock implementation of the Method interface.
// It is exported so external packages (like internal/app) can use it
// in tests.
type MockMethod struct {
	MethodName string
	Solution   models.Solution
	Err        error
	Fn         func(ctx context.Context, d, k uint64) (models.Solution, error)
}

// Name returns the mock's configured name, or "mock" if unset.
func (m *MockMethod) Name() string {
	if m.MethodName != "" {
		return m.MethodName
	}
	return "mock"
}

// SolveAt returns the pre-configured Solution and Err, or calls Fn if
// provided. When a reporter is set, completion is reported.
func (m *MockMethod) SolveAt(ctx context.Context, reporter ProgressReporter, d, k uint64) (models.Solution, error) {
	if m.Fn != nil {
		return m.Fn(ctx, d, k)
	}
	if reporter != nil {
		reporter(1.0)
	}
	return m.Solution, m.Err
}

// TestFactory is a MethodFactory implementation designed for testing.
// It allows tests in other packages to create factories with mock methods.
type TestFactory struct {
	methods map[string]Method
}

// NewTestFactory creates a factory pre-populated with the given methods.
//
// Parameters:
//   - methods: A map of method keys to Method instances.
//
// Returns:
//   - *TestFactory: A factory usable in place of the global factory in tests.
func NewTestFactory(methods map[string]Method) *TestFactory {
	if methods == nil {
		methods = make(map[string]Method)
	}
	return &TestFactory{methods: methods}
}

// Get returns the method registered under key.
func (f *TestFactory) Get(key string) (Method, error) {
	m, ok := f.methods[key]
	if !ok {
		return nil, &UnknownMethodError{Key: key}
	}
	return m, nil
}

// GetAll returns all registered methods keyed by name.
func (f *TestFactory) GetAll() map[string]Method {
	out := make(map[string]Method, len(f.methods))
	for k, v := range f.methods {
		out[k] = v
	}
	return out
}

// List returns all registered method keys.
func (f *TestFactory) List() []string {
	keys := make([]string, 0, len(f.methods))
	for k := range f.methods {
		keys = append(keys, k)
	}
	return keys
}

// UnknownMethodError is returned when a method key is not found.
type UnknownMethodError struct {
	Key string
}

func (e *UnknownMethodError) Error() string {
	return "unknown solver method: " + e.Key
}
