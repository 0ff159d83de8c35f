package planvalidate

import "strings"

// sensitiveFlagNames is a small denylist of flag names whose values must
// never surface in a rendered plan or audit context (SPEC_FULL §4,
// grounded on dshills-plancritic's internal/redact). This is deliberately
// narrower than a full secret-scanning pass: it only needs to catch the one
// channel where a PlanStep's own param values could otherwise leak — the
// authority/validator pipeline never echoes values anywhere else.
var sensitiveFlagNames = map[string]bool{
	"token":    true,
	"password": true,
	"secret":   true,
	"key":      true,
}

const redactedPlaceholder = "[REDACTED]"

func redactValue(flagName string, value string) string {
	if sensitiveFlagNames[strings.ToLower(flagName)] {
		return redactedPlaceholder
	}
	return value
}
