package content

import "strings"

// CardType identifies one of the five card decks.
type CardType string

const (
	// CardTypeWork is the W deck (work scopes).
	CardTypeWork CardType = "W"
	// CardTypeBank is the B deck (bank loans).
	CardTypeBank CardType = "B"
	// CardTypeInvestor is the I deck (investor funding).
	CardTypeInvestor CardType = "I"
	// CardTypeLife is the L deck (life events).
	CardTypeLife CardType = "L"
	// CardTypeExpeditor is the E deck (expeditor actions).
	CardTypeExpeditor CardType = "E"
)

// ValidCardType reports whether value names a known deck.
func ValidCardType(value string) bool {
	switch CardType(strings.ToUpper(strings.TrimSpace(value))) {
	case CardTypeWork, CardTypeBank, CardTypeInvestor, CardTypeLife, CardTypeExpeditor:
		return true
	}
	return false
}

// VisitType selects which data row applies when a player enters a space.
type VisitType string

const (
	// VisitFirst applies on the player's first arrival at a space.
	VisitFirst VisitType = "First"
	// VisitSubsequent applies on every later arrival.
	VisitSubsequent VisitType = "Subsequent"
)

// Target values recognized on card records.
const (
	TargetSelf            = "Self"
	TargetChoosePlayer    = "Choose Player"
	TargetAllOtherPlayers = "All Players-Self"
	TargetAllPlayers      = "All Players"
)

// Card is one card definition row.
type Card struct {
	ID          string
	Name        string
	Type        CardType
	Description string

	// Cost unifies money_cost, loan_amount (B), investment_amount (I) and
	// work_cost (W) per the data conversion rules.
	Cost int

	// DurationTurns is how many turns the card stays active after play;
	// zero means an immediate card with no activation.
	DurationTurns int

	LoanAmount   int
	MoneyEffect  string
	TickModifier string
	DrawCards    string
	DiscardCards string
	TurnEffect   string

	Target           string
	PhaseRestriction string
}

// SpaceEffect is one configured effect row for a space and visit type.
type SpaceEffect struct {
	SpaceName  string
	Visit      VisitType
	EffectType string // money | time | cards
	Action     string // add_money, subtract_time, gain, lose, pay, draw_e, ...
	Value      string
	CardType   string
}

// DiceEffect is one dice outcome row: a per-roll column table for a space.
type DiceEffect struct {
	SpaceName  string
	Visit      VisitType
	EffectType string // money | time | cards
	CardType   string
	Rolls      [6]string // outcome cells for rolls 1..6
}

// Roll returns the outcome cell for a 1-6 dice result.
func (d DiceEffect) Roll(result int) string {
	if result < 1 || result > 6 {
		return ""
	}
	return strings.TrimSpace(d.Rolls[result-1])
}

// SpaceConfig is the per-space configuration row: the board action keyword
// and reachable destinations.
type SpaceConfig struct {
	SpaceName    string
	Action       string // GOTO_JAIL, PAY_TAX, AUCTION, or empty
	Destinations []string
}
