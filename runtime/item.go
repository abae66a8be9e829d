package runtime

import (
	"encoding/json"
	"errors"
	"maps"
)

// PairedItem points an output record back at the input record it came from.
type PairedItem struct {
	Item int `json:"item"`
}

// Item is a single record flowing between workflow nodes.
// JSON is the payload; Error and PairedItem are only set on error entries
// produced under the continue-on-fail policy.
type Item struct {
	JSON       map[string]any
	Error      error
	PairedItem *PairedItem
}

// NewItem returns an item whose payload is a shallow copy of payload.
func NewItem(payload map[string]any) Item {
	return Item{JSON: copyJSON(payload)}
}

// Clone returns a copy of the item with its own top-level payload map.
// Nested values are shared.
func (i Item) Clone() Item {
	c := i
	c.JSON = copyJSON(i.JSON)
	if i.PairedItem != nil {
		p := *i.PairedItem
		c.PairedItem = &p
	}
	return c
}

// IsError reports whether the item is an error entry.
func (i Item) IsError() bool {
	return i.Error != nil
}

// itemError is the wire shape of an item's error.
type itemError struct {
	Message string         `json:"message"`
	Context map[string]any `json:"context,omitempty"`
}

type itemWire struct {
	JSON       map[string]any `json:"json"`
	Error      *itemError     `json:"error,omitempty"`
	PairedItem *PairedItem    `json:"pairedItem,omitempty"`
}

func (i Item) MarshalJSON() ([]byte, error) {
	w := itemWire{
		JSON:       i.JSON,
		PairedItem: i.PairedItem,
	}
	if w.JSON == nil {
		w.JSON = map[string]any{}
	}
	if i.Error != nil {
		w.Error = &itemError{Message: i.Error.Error()}

		var carrier ContextCarrier
		if errors.As(i.Error, &carrier) {
			if ec := carrier.ErrorContext(); ec != nil {
				w.Error.Context = ec.ToMap()
			}
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON accepts the item wire shape. A decoded error becomes a plain
// error carrying the message only.
func (i *Item) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	i.JSON = w.JSON
	if i.JSON == nil {
		i.JSON = map[string]any{}
	}
	i.PairedItem = w.PairedItem
	i.Error = nil
	if w.Error != nil {
		i.Error = errors.New(w.Error.Message)
	}
	return nil
}

// CloneItems copies a sequence of items so the callee can replace records
// without touching the caller's slice.
func CloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}

func copyJSON(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return maps.Clone(m)
}
