package types

// ArgType is the tagged variant of flag/positional value types (spec §3).
type ArgType string

const (
	ArgBool   ArgType = "bool"
	ArgString ArgType = "string"
	ArgInt    ArgType = "int"
	ArgFloat  ArgType = "float"
	ArgPath   ArgType = "path"
	ArgEnum   ArgType = "enum"
)

// RiskLevel is an ordered variant; metadata only, no behavior attaches to it
// anywhere in the enforcer or executor.
type RiskLevel string

const (
	RiskSafe        RiskLevel = "safe"
	RiskLocalWrite  RiskLevel = "local_write"
	RiskSharedWrite RiskLevel = "shared_write"
	RiskDestructive RiskLevel = "destructive"
)

// riskOrder gives RiskLevel its total order, used only for comparison via
// Less; it never gates execution.
var riskOrder = map[RiskLevel]int{
	RiskSafe:        0,
	RiskLocalWrite:  1,
	RiskSharedWrite: 2,
	RiskDestructive: 3,
}

// Less reports whether r sorts before other under the RiskLevel order.
func (r RiskLevel) Less(other RiskLevel) bool {
	return riskOrder[r] < riskOrder[other]
}
