// Package model defines the canonical player record and its two
// serialization boundaries: the external feed's quirky field set and the
// storage schema.
package model

import (
	"math"
	"strconv"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
)

// Player is the canonical representation of one player's career batting
// line. ID is assigned by storage; 0 means the record has not been saved.
type Player struct {
	ID                 int     `json:"id"`
	Name               string  `json:"player_name"`
	Position           string  `json:"position"`
	Games              int     `json:"games"`
	AtBats             int     `json:"at_bats"`
	Runs               int     `json:"runs"`
	Hits               int     `json:"hits"`
	Doubles            int     `json:"doubles"`
	Triples            int     `json:"triples"`
	HomeRuns           int     `json:"home_runs"`
	RBIs               int     `json:"rbis"`
	Walks              int     `json:"walks"`
	Strikeouts         int     `json:"strikeouts"`
	StolenBases        int     `json:"stolen_bases"`
	CaughtStealing     int     `json:"caught_stealing"`
	BattingAverage     float64 `json:"batting_average"`
	OnBasePercentage   float64 `json:"on_base_percentage"`
	SluggingPercentage float64 `json:"slugging_percentage"`
	OPS                float64 `json:"ops"`
	IsEdited           bool    `json:"is_edited"`
}

// ParseExternal maps one raw feed object onto a Player.
//
// The feed's field naming is inconsistent: "third baseman" is actually the
// triples (3B) count and "a walk" is the walk (BB) count. Rate stats arrive
// as numeric strings. Any required key that is absent or of the wrong shape
// fails with a malformed-record error naming the key.
func ParseExternal(raw map[string]any) (Player, error) {
	var p Player
	var err error

	if p.Name, err = stringField(raw, "Player name"); err != nil {
		return Player{}, err
	}
	if p.Position, err = stringField(raw, "position"); err != nil {
		return Player{}, err
	}

	counts := []struct {
		key string
		dst *int
	}{
		{"Games", &p.Games},
		{"At-bat", &p.AtBats},
		{"Runs", &p.Runs},
		{"Hits", &p.Hits},
		{"Double (2B)", &p.Doubles},
		{"third baseman", &p.Triples}, // feed mislabels triples
		{"home run", &p.HomeRuns},
		{"run batted in", &p.RBIs},
		{"a walk", &p.Walks}, // feed mislabels walks
		{"Strikeouts", &p.Strikeouts},
		{"stolen base", &p.StolenBases},
		{"Caught stealing", &p.CaughtStealing},
	}
	for _, c := range counts {
		if *c.dst, err = intField(raw, c.key); err != nil {
			return Player{}, err
		}
	}

	rates := []struct {
		key string
		dst *float64
	}{
		{"AVG", &p.BattingAverage},
		{"On-base Percentage", &p.OnBasePercentage},
		{"Slugging Percentage", &p.SluggingPercentage},
		{"On-base Plus Slugging", &p.OPS},
	}
	for _, r := range rates {
		if *r.dst, err = rateField(raw, r.key); err != nil {
			return Player{}, err
		}
	}

	return p, nil
}

// Round3 normalizes a rate statistic to the storage precision of three
// decimal digits, so DECIMAL(5,3) columns round-trip without drift.
func Round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func stringField(raw map[string]any, key string) (string, error) {
	v, ok := raw[key]
	if !ok {
		return "", apperr.MalformedField(key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", apperr.MalformedField(key)
	}
	return s, nil
}

func intField(raw map[string]any, key string) (int, error) {
	v, ok := raw[key]
	if !ok {
		return 0, apperr.MalformedField(key)
	}
	f, ok := numericValue(v)
	if !ok {
		return 0, apperr.MalformedField(key)
	}
	return int(f), nil
}

func rateField(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok {
		return 0, apperr.MalformedField(key)
	}
	f, ok := numericValue(v)
	if !ok {
		return 0, apperr.MalformedField(key)
	}
	return f, nil
}

// numericValue coerces the value shapes the feed is known to produce:
// JSON numbers for counting stats, numeric strings for rates.
func numericValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
