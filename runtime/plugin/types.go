package plugin

import "github.com/BDNK1/sflowg-sholat/runtime"

// Item is a single record flowing between nodes.
//
//	item.JSON["city"]      // payload field
//	item.PairedItem.Item   // originating input index on error entries
type Item = runtime.Item

type PairedItem = runtime.PairedItem

// NodeDescription and NodeProperty declare a node's metadata and parameter
// schema. Property defaults are used when a workflow leaves a parameter unset.
type (
	NodeDescription = runtime.NodeDescription
	NodeProperty    = runtime.NodeProperty
	NodeIdentity    = runtime.NodeIdentity
)

// ErrorContext is the optional attachment an error can carry to report the
// failing record. Errors expose it by implementing ContextCarrier.
type (
	ErrorContext   = runtime.ErrorContext
	ContextCarrier = runtime.ContextCarrier
)

// NodeOperationError is the host-recognized wrapper for record failures.
type NodeOperationError = runtime.NodeOperationError
