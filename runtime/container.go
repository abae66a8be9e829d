package runtime

import (
	"context"
	"errors"
	"fmt"
)

// Container holds the configured node instances a host can execute, keyed by
// the id of the definition that configured them.
type Container struct {
	nodes        map[string]Node
	order        []string     // registration order, drives lifecycle ordering
	initializers []registered // nodes implementing Initializer
	shutdowners  []registered // nodes implementing Shutdowner
}

type registered struct {
	name string
	node Node
}

func NewContainer() *Container {
	return &Container{
		nodes: make(map[string]Node),
	}
}

// RegisterNode registers a node instance under a definition id and detects its
// lifecycle interfaces.
func (c *Container) RegisterNode(name string, node Node) error {
	if node == nil {
		return fmt.Errorf("node cannot be nil")
	}
	if name == "" {
		return fmt.Errorf("node id cannot be empty")
	}
	if _, exists := c.nodes[name]; exists {
		return fmt.Errorf("node %q already registered", name)
	}

	c.nodes[name] = node
	c.order = append(c.order, name)

	if _, ok := node.(Initializer); ok {
		c.initializers = append(c.initializers, registered{name, node})
	}
	if _, ok := node.(Shutdowner); ok {
		c.shutdowners = append(c.shutdowners, registered{name, node})
	}

	return nil
}

// Node returns the node registered under name, or nil.
func (c *Container) Node(name string) Node {
	return c.nodes[name]
}

// NodeIDs returns registered ids in registration order.
func (c *Container) NodeIDs() []string {
	return append([]string(nil), c.order...)
}

// Initialize calls Initialize on every node implementing Initializer, in
// registration order. The first failure stops startup.
func (c *Container) Initialize(ctx context.Context) error {
	for _, r := range c.initializers {
		if err := r.node.(Initializer).Initialize(ctx); err != nil {
			return fmt.Errorf("node %q initialization failed: %w", r.name, err)
		}
	}
	return nil
}

// Shutdown calls Shutdown on every node implementing Shutdowner.
// Nodes are shut down in reverse order of registration
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	for i := len(c.shutdowners) - 1; i >= 0; i-- {
		r := c.shutdowners[i]
		if err := r.node.(Shutdowner).Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("node %q shutdown failed: %w", r.name, err))
		}
	}
	return errors.Join(errs...)
}
