// Package plugin provides the minimal surface for node development.
//
// Node authors import this package and never the parent "runtime" package:
//
//	import "github.com/BDNK1/sflowg-sholat/runtime/plugin"
//
// # Node Structure
//
// A node is a struct implementing plugin.Node:
//
//	type EchoNode struct{}
//
//	func (n *EchoNode) Description() plugin.NodeDescription {
//	    return plugin.NodeDescription{
//	        Name:        "echo",
//	        DisplayName: "Echo",
//	        Properties: []plugin.NodeProperty{
//	            {Name: "message", Type: "string", Default: "hello"},
//	        },
//	    }
//	}
//
//	func (n *EchoNode) Execute(fns plugin.ExecuteFunctions) ([]plugin.Item, error) {
//	    items := fns.InputData()
//	    for i := range items {
//	        msg, err := plugin.StringParameter(fns, "message", i, "")
//	        if err != nil {
//	            return nil, plugin.AttachItemIndex(fns.Node(), err, i)
//	        }
//	        items[i].JSON["message"] = msg
//	    }
//	    return items, nil
//	}
//
// # Configuration
//
// Nodes can carry a Config struct with declarative tags:
//
//	type Config struct {
//	    BaseURL string        `yaml:"base_url" default:"https://example.com" validate:"required,url_format"`
//	    Timeout time.Duration `yaml:"timeout" default:"0s" validate:"gte=0"`
//	}
//
// The host applies defaults, merges the definition's config map and validates
// before Initialize is called.
//
// # Lifecycle Management
//
// Nodes can optionally implement Initializer and Shutdowner:
//
//	func (n *MyNode) Initialize(ctx context.Context) error { return nil }
//	func (n *MyNode) Shutdown(ctx context.Context) error   { return nil }
//
// # Per-Record Failures
//
// When fns.ContinueOnFail() is true a failing record is reported by appending
// an error item with PairedItem set; otherwise return AttachItemIndex(...) so
// the host can tell which record aborted the run.
package plugin
