package model

import (
	"encoding/json"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
)

// PlayerPatch is the closed set of fields an edit request may change.
// A nil pointer means the field was not mentioned; a non-nil pointer holds
// the value to set. JSON null coerces to the field's zero value at parse
// time, so a patch never writes null into storage.
type PlayerPatch struct {
	Name               *string
	Position           *string
	Games              *int
	AtBats             *int
	Runs               *int
	Hits               *int
	Doubles            *int
	Triples            *int
	HomeRuns           *int
	RBIs               *int
	Walks              *int
	Strikeouts         *int
	StolenBases        *int
	CaughtStealing     *int
	BattingAverage     *float64
	OnBasePercentage   *float64
	SluggingPercentage *float64
	OPS                *float64
	IsEdited           *bool
}

// ParsePatch decodes an update payload into a PlayerPatch.
//
// Keys outside the allow-list — including "id" — are rejected, so a caller
// cannot smuggle computed fields into a write. A key present with a JSON
// null coerces to the zero value of its type.
func ParsePatch(data []byte) (PlayerPatch, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return PlayerPatch{}, apperr.Wrap(apperr.KindValidation, "invalid update payload", err)
	}

	var p PlayerPatch
	for key, val := range raw {
		var err error
		switch key {
		case "player_name":
			p.Name, err = patchString(val)
		case "position":
			p.Position, err = patchString(val)
		case "games":
			p.Games, err = patchInt(val)
		case "at_bats":
			p.AtBats, err = patchInt(val)
		case "runs":
			p.Runs, err = patchInt(val)
		case "hits":
			p.Hits, err = patchInt(val)
		case "doubles":
			p.Doubles, err = patchInt(val)
		case "triples":
			p.Triples, err = patchInt(val)
		case "home_runs":
			p.HomeRuns, err = patchInt(val)
		case "rbis":
			p.RBIs, err = patchInt(val)
		case "walks":
			p.Walks, err = patchInt(val)
		case "strikeouts":
			p.Strikeouts, err = patchInt(val)
		case "stolen_bases":
			p.StolenBases, err = patchInt(val)
		case "caught_stealing":
			p.CaughtStealing, err = patchInt(val)
		case "batting_average":
			p.BattingAverage, err = patchFloat(val)
		case "on_base_percentage":
			p.OnBasePercentage, err = patchFloat(val)
		case "slugging_percentage":
			p.SluggingPercentage, err = patchFloat(val)
		case "ops":
			p.OPS, err = patchFloat(val)
		case "is_edited":
			p.IsEdited, err = patchBool(val)
		default:
			return PlayerPatch{}, apperr.Newf(apperr.KindValidation, "unknown field %q in update payload", key)
		}
		if err != nil {
			return PlayerPatch{}, apperr.Newf(apperr.KindValidation, "invalid value for field %q", key)
		}
	}
	return p, nil
}

// ApplyEdit applies the patch to p and marks the record locally edited.
// An explicit is_edited in the patch wins over the default; a sync never
// goes through this path, so the flag can only be cleared deliberately.
func (pt PlayerPatch) ApplyEdit(p *Player) {
	setStr := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setFloat := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}

	setStr(&p.Name, pt.Name)
	setStr(&p.Position, pt.Position)
	setInt(&p.Games, pt.Games)
	setInt(&p.AtBats, pt.AtBats)
	setInt(&p.Runs, pt.Runs)
	setInt(&p.Hits, pt.Hits)
	setInt(&p.Doubles, pt.Doubles)
	setInt(&p.Triples, pt.Triples)
	setInt(&p.HomeRuns, pt.HomeRuns)
	setInt(&p.RBIs, pt.RBIs)
	setInt(&p.Walks, pt.Walks)
	setInt(&p.Strikeouts, pt.Strikeouts)
	setInt(&p.StolenBases, pt.StolenBases)
	setInt(&p.CaughtStealing, pt.CaughtStealing)
	setFloat(&p.BattingAverage, pt.BattingAverage)
	setFloat(&p.OnBasePercentage, pt.OnBasePercentage)
	setFloat(&p.SluggingPercentage, pt.SluggingPercentage)
	setFloat(&p.OPS, pt.OPS)

	if pt.IsEdited != nil {
		p.IsEdited = *pt.IsEdited
	} else {
		p.IsEdited = true
	}
}

func isNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}

func patchString(raw json.RawMessage) (*string, error) {
	if isNull(raw) {
		s := ""
		return &s, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func patchInt(raw json.RawMessage) (*int, error) {
	if isNull(raw) {
		n := 0
		return &n, nil
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func patchFloat(raw json.RawMessage) (*float64, error) {
	if isNull(raw) {
		f := 0.0
		return &f, nil
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func patchBool(raw json.RawMessage) (*bool, error) {
	if isNull(raw) {
		b := false
		return &b, nil
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return nil, err
	}
	return &b, nil
}
