package runtime

import (
	"errors"
	"fmt"
	"maps"
)

// ErrorContext is the optional attachment an error can carry so the host can
// tell which record failed. Meta holds anything else the error wants to expose
// (status codes, endpoints).
type ErrorContext struct {
	ItemIndex int
	Meta      map[string]any
}

// NewErrorContext creates an empty context. ItemIndex is -1 until tagged.
func NewErrorContext() *ErrorContext {
	return &ErrorContext{
		ItemIndex: -1,
		Meta:      make(map[string]any),
	}
}

// WithMeta adds metadata to the context
func (c *ErrorContext) WithMeta(key string, value any) *ErrorContext {
	if c.Meta == nil {
		c.Meta = make(map[string]any)
	}
	c.Meta[key] = value
	return c
}

// ToMap converts the context to its wire form.
func (c *ErrorContext) ToMap() map[string]any {
	m := make(map[string]any, len(c.Meta)+1)
	maps.Copy(m, c.Meta)
	if c.ItemIndex >= 0 {
		m["itemIndex"] = c.ItemIndex
	}
	return m
}

// ContextCarrier is implemented by errors that carry an ErrorContext.
// A nil return means the error has no attachment.
type ContextCarrier interface {
	error
	ErrorContext() *ErrorContext
}

// NodeOperationError wraps a failure raised while a node processed a record.
type NodeOperationError struct {
	Node    NodeIdentity
	Err     error
	Context *ErrorContext
}

// NewNodeOperationError wraps err and tags it with the failing record's index.
func NewNodeOperationError(node NodeIdentity, err error, itemIndex int) *NodeOperationError {
	ec := NewErrorContext()
	ec.ItemIndex = itemIndex
	return &NodeOperationError{
		Node:    node,
		Err:     err,
		Context: ec,
	}
}

func (e *NodeOperationError) Error() string {
	msg := "node operation failed"
	if e.Err != nil {
		msg = e.Err.Error()
	}
	if e.Node.Name != "" {
		return fmt.Sprintf("%s: %s", e.Node.Name, msg)
	}
	return msg
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *NodeOperationError) Unwrap() error {
	return e.Err
}

func (e *NodeOperationError) ErrorContext() *ErrorContext {
	return e.Context
}

// AttachItemIndex tags err with itemIndex before it is raised to the host.
// An error that already carries a context keeps its identity and only gets the
// index set; anything else is wrapped in a NodeOperationError.
func AttachItemIndex(node NodeIdentity, err error, itemIndex int) error {
	var carrier ContextCarrier
	if errors.As(err, &carrier) {
		if ec := carrier.ErrorContext(); ec != nil {
			ec.ItemIndex = itemIndex
			return err
		}
	}
	return NewNodeOperationError(node, err, itemIndex)
}

// ItemIndexOf returns the record index a raised error was tagged with.
func ItemIndexOf(err error) (int, bool) {
	var carrier ContextCarrier
	if !errors.As(err, &carrier) {
		return 0, false
	}
	ec := carrier.ErrorContext()
	if ec == nil || ec.ItemIndex < 0 {
		return 0, false
	}
	return ec.ItemIndex, true
}
