package runtime

import (
	"context"
	"log/slog"
)

// ExecuteFunctions is the host context handed to a node for one run.
// It implements context.Context so nodes can pass it straight to I/O calls;
// cancellation is whatever the host attached to it.
type ExecuteFunctions interface {
	context.Context

	// InputData returns the records the node should process, in order.
	InputData() []Item

	// NodeParameter resolves a parameter for the record at itemIndex.
	// fallback is returned when neither the workflow nor the node
	// description provides a value.
	NodeParameter(name string, itemIndex int, fallback any) (any, error)

	// ContinueOnFail reports whether record failures should be captured
	// as error entries instead of aborting the run.
	ContinueOnFail() bool

	// Node identifies the node instance being executed.
	Node() NodeIdentity

	Logger() *slog.Logger
}

// Node is a workflow node type that a host can execute.
type Node interface {
	Description() NodeDescription
	Execute(fns ExecuteFunctions) ([]Item, error)
}

// Initializer interface allows nodes to perform startup initialization.
// Nodes implementing this interface will have Initialize called at container startup.
type Initializer interface {
	// Initialize is called once when the container starts up.
	// Config is already set and validated on the node struct.
	Initialize(ctx context.Context) error
}

// Shutdowner interface allows nodes to perform graceful shutdown.
type Shutdowner interface {
	Shutdown(ctx context.Context) error
}
