package content

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// header maps CSV column names to positions, tolerating a UTF-8 BOM on the
// first column the way the shipped data files carry one.
type header map[string]int

func readHeader(record []string) header {
	columns := make(header, len(record))
	for i, name := range record {
		name = strings.TrimPrefix(strings.TrimSpace(name), "\uFEFF")
		columns[strings.ToLower(name)] = i
	}
	return columns
}

func (h header) get(record []string, name string) string {
	idx, ok := h[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (h header) getInt(record []string, name string) int {
	value, _ := ParseAmount(h.get(record, name))
	return value
}

func newReader(r io.Reader) *csv.Reader {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	return reader
}

// LoadCards reads card definitions from CSV.
func LoadCards(r io.Reader) ([]Card, error) {
	reader := newReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read cards csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("cards csv is empty")
	}
	columns := readHeader(rows[0])

	cards := make([]Card, 0, len(rows)-1)
	for _, record := range rows[1:] {
		id := columns.get(record, "card_id")
		if id == "" {
			continue
		}
		card := Card{
			ID:               id,
			Name:             columns.get(record, "card_name"),
			Type:             CardType(strings.ToUpper(columns.get(record, "card_type"))),
			Description:      columns.get(record, "description"),
			Cost:             columns.getInt(record, "cost"),
			DurationTurns:    columns.getInt(record, "duration_count"),
			LoanAmount:       columns.getInt(record, "loan_amount"),
			MoneyEffect:      columns.get(record, "money_effect"),
			TickModifier:     columns.get(record, "tick_modifier"),
			DrawCards:        columns.get(record, "draw_cards"),
			DiscardCards:     columns.get(record, "discard_cards"),
			TurnEffect:       columns.get(record, "turn_effect"),
			Target:           columns.get(record, "target"),
			PhaseRestriction: columns.get(record, "phase_restriction"),
		}
		if card.Target == "" {
			card.Target = TargetSelf
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// LoadSpaceEffects reads per-space effect rows from CSV.
func LoadSpaceEffects(r io.Reader) ([]SpaceEffect, error) {
	reader := newReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read space effects csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("space effects csv is empty")
	}
	columns := readHeader(rows[0])

	effects := make([]SpaceEffect, 0, len(rows)-1)
	for _, record := range rows[1:] {
		name := columns.get(record, "space_name")
		if name == "" {
			continue
		}
		effects = append(effects, SpaceEffect{
			SpaceName:  name,
			Visit:      visitType(columns.get(record, "visit_type")),
			EffectType: strings.ToLower(columns.get(record, "effect_type")),
			Action:     columns.get(record, "effect_action"),
			Value:      columns.get(record, "effect_value"),
			CardType:   strings.ToUpper(columns.get(record, "card_type")),
		})
	}
	return effects, nil
}

// LoadDiceEffects reads dice outcome tables from CSV.
func LoadDiceEffects(r io.Reader) ([]DiceEffect, error) {
	reader := newReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read dice effects csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dice effects csv is empty")
	}
	columns := readHeader(rows[0])

	effects := make([]DiceEffect, 0, len(rows)-1)
	for _, record := range rows[1:] {
		name := columns.get(record, "space_name")
		if name == "" {
			continue
		}
		row := DiceEffect{
			SpaceName:  name,
			Visit:      visitType(columns.get(record, "visit_type")),
			EffectType: strings.ToLower(columns.get(record, "effect_type")),
			CardType:   strings.ToUpper(columns.get(record, "card_type")),
		}
		for i := 0; i < 6; i++ {
			row.Rolls[i] = columns.get(record, "roll_"+strconv.Itoa(i+1))
		}
		effects = append(effects, row)
	}
	return effects, nil
}

// LoadSpaceConfigs reads the per-space configuration table from CSV.
// Destinations are a semicolon-separated list.
func LoadSpaceConfigs(r io.Reader) ([]SpaceConfig, error) {
	reader := newReader(r)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read game config csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("game config csv is empty")
	}
	columns := readHeader(rows[0])

	configs := make([]SpaceConfig, 0, len(rows)-1)
	for _, record := range rows[1:] {
		name := columns.get(record, "space_name")
		if name == "" {
			continue
		}
		config := SpaceConfig{
			SpaceName: name,
			Action:    strings.ToUpper(columns.get(record, "space_action")),
		}
		for _, destination := range strings.Split(columns.get(record, "destinations"), ";") {
			destination = strings.TrimSpace(destination)
			if destination != "" {
				config.Destinations = append(config.Destinations, destination)
			}
		}
		configs = append(configs, config)
	}
	return configs, nil
}

func visitType(value string) VisitType {
	if strings.EqualFold(strings.TrimSpace(value), string(VisitSubsequent)) {
		return VisitSubsequent
	}
	return VisitFirst
}
