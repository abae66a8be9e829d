package plugin

import "github.com/BDNK1/sflowg-sholat/runtime"

// ExecuteFunctions is the host context passed to Node.Execute. It implements
// context.Context, so it can be handed to any call that takes a context:
//
//	resp, err := client.R().SetContext(fns).Get(url)
type ExecuteFunctions = runtime.ExecuteFunctions

var (
	// StringParameter resolves a parameter for one record and renders it as a string.
	StringParameter = runtime.StringParameter

	// NewItem creates an item with a copy of the given payload.
	NewItem = runtime.NewItem

	// NewErrorContext creates an empty error attachment (ItemIndex -1).
	NewErrorContext = runtime.NewErrorContext

	// NewNodeOperationError wraps err and tags it with the failing record index.
	NewNodeOperationError = runtime.NewNodeOperationError

	// AttachItemIndex tags an error that carries a context in place, or wraps it.
	AttachItemIndex = runtime.AttachItemIndex
)
