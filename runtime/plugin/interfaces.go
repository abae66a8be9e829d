package plugin

import "github.com/BDNK1/sflowg-sholat/runtime"

// Node is the interface every node type implements.
type Node = runtime.Node

// Initializer is implemented by nodes that need setup before the first run,
// such as building HTTP clients from validated config. A failing Initialize
// stops host startup.
type Initializer = runtime.Initializer

// Shutdowner is implemented by nodes that hold resources. Shutdown is called
// in reverse registration order.
type Shutdowner = runtime.Shutdowner
