package config

// IsTestMode indicates the process is running under the test harness.
// Inference variable ids are session-local and nondeterministic, so String()
// methods normalize them in test mode for stable output.
var IsTestMode = false

// Display markers for types that have no source-level name.
const (
	UnknownTypeName  = "{unknown}"
	ErrorTypeName    = "{error}"
	InferVarPrefix   = "?"
	NormalizedInfVar = "?_"
)
