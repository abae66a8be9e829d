package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Runner executes configured workflow nodes against input records.
type Runner struct {
	l         *slog.Logger
	container *Container
}

func NewRunner(l *slog.Logger, container *Container) *Runner {
	return &Runner{
		l:         l,
		container: container,
	}
}

// Run executes def once over items and returns the node's output sequence.
// An error means the node aborted the run; it carries the failing item index
// when the node tagged one (see ItemIndexOf).
func (r *Runner) Run(ctx context.Context, def *WorkflowNode, items []Item) ([]Item, error) {
	node := r.container.Node(def.ID)
	if node == nil {
		return nil, fmt.Errorf("no node registered for %s (type %q)", def.ID, def.Type)
	}

	execution := NewExecution(ctx, def, node, items, r.l)
	l := execution.Logger()

	start := time.Now()
	l.InfoContext(execution, "Executing node",
		"type", def.Type,
		"items", len(items),
		"continue_on_fail", def.ContinueOnFail)

	output, err := node.Execute(execution)
	if err != nil {
		attrs := []any{
			"duration", time.Since(start),
			"error", err,
		}
		if idx, ok := ItemIndexOf(err); ok {
			attrs = append(attrs, "item_index", idx)
		}
		l.ErrorContext(execution, "Node execution failed", attrs...)
		return nil, err
	}

	failed := 0
	for _, it := range output {
		if it.IsError() {
			failed++
		}
	}
	l.InfoContext(execution, "Node executed",
		"duration", time.Since(start),
		"items_in", len(items),
		"items_out", len(output),
		"error_items", failed)

	return output, nil
}
