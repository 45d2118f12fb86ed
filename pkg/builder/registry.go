// Package builder renders ASTs into textual notations.
//
// Builders are pure functions of the tree. Three notations are registered
// by default ("infix", "prefix" and "postfix") and the registry is open
// for extension:
//
//	builder.Register("lisp", lispBuilder{})
//	text, err := builder.Render(ast, "lisp")
//
// Rendering with an unregistered name fails with a
// *types.UnknownNotationError.
package builder

import (
	"sort"
	"sync"

	"github.com/sandrolain/gomathml/pkg/types"
)

// Builder converts an AST into one textual surface syntax.
type Builder interface {
	Build(node types.Node) (string, error)
}

// Registry is a named collection of notation builders.
// It is safe for concurrent use by multiple goroutines.
type Registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		builders: make(map[string]Builder),
	}
}

// Register adds or replaces the builder registered under name.
func (r *Registry) Register(name string, b Builder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.builders[name] = b
}

// Lookup returns the builder registered under name.
func (r *Registry) Lookup(name string) (Builder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.builders[name]
	if !ok {
		return nil, &types.UnknownNotationError{Name: name}
	}
	return b, nil
}

// Names returns the registered notation names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render renders node with the builder registered under notation.
func (r *Registry) Render(node types.Node, notation string) (string, error) {
	b, err := r.Lookup(notation)
	if err != nil {
		return "", err
	}
	return b.Build(node)
}

var defaultRegistry = func() *Registry {
	r := NewRegistry()
	r.Register("infix", infixBuilder{})
	r.Register("prefix", prefixBuilder{})
	r.Register("postfix", postfixBuilder{})
	return r
}()

// Default returns the registry holding the built-in notations.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a builder to the default registry.
func Register(name string, b Builder) {
	defaultRegistry.Register(name, b)
}

// Render renders node with a builder from the default registry.
func Render(node types.Node, notation string) (string, error) {
	return defaultRegistry.Render(node, notation)
}
