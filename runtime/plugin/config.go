package plugin

import "github.com/BDNK1/sflowg-sholat/runtime"

// InitializeConfig applies a Config struct's tag defaults, merges a
// definition's raw config map into it and validates the result.
var InitializeConfig = runtime.InitializeConfig
