package filter

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/s0up4200/hackcheck/hackcheck"
)

// Manager holds named filter presets
type Manager struct {
	compiler Compiler
	filters  map[string]CompiledFilter
	mu       sync.RWMutex
}

// ManagerOption configures a filter manager
type ManagerOption func(*Manager)

// WithCompiler sets a custom compiler
func WithCompiler(compiler Compiler) ManagerOption {
	return func(m *Manager) {
		m.compiler = compiler
	}
}

// NewManager creates a new filter manager
func NewManager(opts ...ManagerOption) *Manager {
	m := &Manager{
		compiler: NewExprCompiler(WithCache(100)),
		filters:  make(map[string]CompiledFilter),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// RegisterFilter registers a new filter or updates an existing one
func (m *Manager) RegisterFilter(name, expression string) error {
	filter, err := m.compiler.Compile(expression)
	if err != nil {
		return fmt.Errorf("failed to compile filter '%s': %w", name, err)
	}

	m.mu.Lock()
	m.filters[name] = filter
	m.mu.Unlock()

	return nil
}

// RegisterFilters registers all filters or none of them
func (m *Manager) RegisterFilters(filters map[string]string) error {
	compiled := make(map[string]CompiledFilter, len(filters))

	for name, expression := range filters {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return fmt.Errorf("failed to compile filter '%s': %w", name, err)
		}
		compiled[name] = filter
	}

	m.mu.Lock()
	maps.Copy(m.filters, compiled)
	m.mu.Unlock()

	return nil
}

// GetFilter returns a compiled filter by name
func (m *Manager) GetFilter(name string) (CompiledFilter, bool) {
	m.mu.RLock()
	filter, exists := m.filters[name]
	m.mu.RUnlock()
	return filter, exists
}

// ListFilters returns all registered filter names in sorted order
func (m *Manager) ListFilters() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Sorted(maps.Keys(m.filters))
}

// Resolve combines the named presets and an ad-hoc expression into one
// filter that requires all of them to match. It returns nil when nothing
// was requested.
func (m *Manager) Resolve(presets []string, expression string) (Filter, error) {
	var all allOf

	for _, name := range presets {
		filter, ok := m.GetFilter(name)
		if !ok {
			return nil, &PresetNotFoundError{Name: name}
		}
		all = append(all, filter)
	}

	if expression != "" {
		filter, err := m.compiler.Compile(expression)
		if err != nil {
			return nil, err
		}
		all = append(all, filter)
	}

	switch len(all) {
	case 0:
		return nil, nil
	case 1:
		return all[0], nil
	default:
		return all, nil
	}
}

// EvaluateFilter applies a single registered filter
func (m *Manager) EvaluateFilter(ctx context.Context, name string, results []hackcheck.SearchResult) ([]hackcheck.SearchResult, error) {
	filter, exists := m.GetFilter(name)
	if !exists {
		return nil, &PresetNotFoundError{Name: name}
	}

	return Apply(ctx, filter, results)
}

type allOf []Filter

func (a allOf) Evaluate(result hackcheck.SearchResult) bool {
	for _, f := range a {
		if !f.Evaluate(result) {
			return false
		}
	}
	return true
}
