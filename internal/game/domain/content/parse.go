package content

import (
	"strconv"
	"strings"
)

// SignForAction maps an effect action keyword to an amount sign. Gain verbs
// yield +1, loss verbs -1. Unknown verbs report false so the caller can
// degrade to a no-op.
func SignForAction(action string) (int, bool) {
	normalized := strings.ToLower(strings.TrimSpace(action))
	switch {
	case strings.Contains(normalized, "add"),
		strings.Contains(normalized, "gain"),
		strings.Contains(normalized, "receive"):
		return 1, true
	case strings.Contains(normalized, "subtract"),
		strings.Contains(normalized, "lose"),
		strings.Contains(normalized, "pay"):
		return -1, true
	}
	return 0, false
}

// IsPercentage reports whether a value field is percentage-based.
// Percentage money effects are an unsupported, documented limitation and
// degrade to zero.
func IsPercentage(value string) bool {
	return strings.Contains(value, "%")
}

// ParseAmount parses a numeric effect value. Currency symbols, commas, and
// surrounding whitespace are tolerated. Unparseable or percentage values
// degrade to zero with ok=false; this function never fails.
func ParseAmount(value string) (int, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || IsPercentage(trimmed) {
		return 0, false
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(trimmed)
	amount, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// ParseCardSpec parses a "<count> <TYPE>" card field such as "3 B".
// Malformed specs degrade to ok=false.
func ParseCardSpec(value string) (count int, cardType CardType, ok bool) {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) != 2 {
		return 0, "", false
	}
	parsed, err := strconv.Atoi(fields[0])
	if err != nil || parsed <= 0 {
		return 0, "", false
	}
	if !ValidCardType(fields[1]) {
		return 0, "", false
	}
	return parsed, CardType(strings.ToUpper(fields[1])), true
}

// ParseDrawSpec parses a dice-table "Draw <n>" cell. The card type comes
// from the row's separate card-type field, not from the cell.
func ParseDrawSpec(value string) (count int, ok bool) {
	fields := strings.Fields(strings.TrimSpace(value))
	if len(fields) != 2 || !strings.EqualFold(fields[0], "Draw") {
		return 0, false
	}
	parsed, err := strconv.Atoi(fields[1])
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}

// ParseTurnSkips extracts the skipped-turn count from a card turn-effect
// field such as "Skip 1 turn" or "skip next 2 turns".
func ParseTurnSkips(value string) int {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if !strings.Contains(normalized, "skip") || !strings.Contains(normalized, "turn") {
		return 0
	}
	for _, field := range strings.Fields(normalized) {
		if parsed, err := strconv.Atoi(field); err == nil && parsed > 0 {
			return parsed
		}
	}
	// A skip phrase with no explicit count means one turn.
	return 1
}
