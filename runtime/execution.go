package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

var (
	_ context.Context  = &Execution{}
	_ ExecuteFunctions = &Execution{}
)

// Execution is the host context for one node run. It owns the input
// sequence, resolves parameters per record and carries the run's context.
type Execution struct {
	ID          string
	Definition  *WorkflowNode
	Description NodeDescription
	items       []Item
	l           *slog.Logger
	ctx         context.Context // real context carrying deadline/cancellation
}

func NewExecution(ctx context.Context, def *WorkflowNode, node Node, items []Item, l *slog.Logger) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	if l == nil {
		l = slog.Default()
	}
	id := uuid.New().String()
	return &Execution{
		ID:          id,
		Definition:  def,
		Description: node.Description(),
		items:       CloneItems(items),
		l:           l.With("execution_id", id, "node", def.Identity().Name),
		ctx:         ctx,
	}
}

// context.Context implementation delegates to the embedded ctx so host
// cancellation reaches every outbound call made with the execution.

func (e *Execution) Deadline() (deadline time.Time, ok bool) {
	return e.ctx.Deadline()
}

func (e *Execution) Done() <-chan struct{} {
	return e.ctx.Done()
}

func (e *Execution) Err() error {
	return e.ctx.Err()
}

func (e *Execution) Value(key any) any {
	return e.ctx.Value(key)
}

// InputData returns a copy of the input sequence; nodes may replace
// records in the returned slice without affecting the host.
func (e *Execution) InputData() []Item {
	return CloneItems(e.items)
}

// NodeParameter resolves name for the record at itemIndex. The workflow's
// configured value wins, then the node description's default, then fallback.
func (e *Execution) NodeParameter(name string, itemIndex int, fallback any) (any, error) {
	if itemIndex < 0 || itemIndex >= len(e.items) {
		return nil, fmt.Errorf("parameter %q: item index %d out of range [0,%d)", name, itemIndex, len(e.items))
	}

	raw, ok := e.Definition.Parameters[name]
	if !ok {
		prop, declared := e.Description.Property(name)
		if !declared || prop.Default == nil {
			return fallback, nil
		}
		raw = prop.Default
	}

	value, err := ResolveParameter(raw, e.items[itemIndex], itemIndex)
	if err != nil {
		e.l.ErrorContext(e, "Error resolving node parameter",
			"parameter", name,
			"item_index", itemIndex,
			"error", err)
		return nil, fmt.Errorf("parameter %q: %w", name, err)
	}
	return value, nil
}

func (e *Execution) ContinueOnFail() bool {
	return e.Definition.ContinueOnFail
}

func (e *Execution) Node() NodeIdentity {
	return e.Definition.Identity()
}

func (e *Execution) Logger() *slog.Logger {
	return e.l
}

// StringParameter resolves a string parameter through any ExecuteFunctions.
func StringParameter(fns ExecuteFunctions, name string, itemIndex int, fallback string) (string, error) {
	v, err := fns.NodeParameter(name, itemIndex, fallback)
	if err != nil {
		return "", err
	}
	return ParameterString(v), nil
}
