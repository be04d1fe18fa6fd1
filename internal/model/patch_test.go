package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
)

func TestParsePatch_NullsCoerceToZeroValues(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"games": null, "batting_average": null, "is_edited": null}`))
	require.NoError(t, err)

	require.NotNil(t, patch.Games)
	assert.Equal(t, 0, *patch.Games)
	require.NotNil(t, patch.BattingAverage)
	assert.Equal(t, 0.0, *patch.BattingAverage)
	require.NotNil(t, patch.IsEdited)
	assert.False(t, *patch.IsEdited)

	p := Player{ID: 3, Name: "Babe Ruth", Games: 2503, BattingAverage: 0.342, IsEdited: true}
	patch.ApplyEdit(&p)

	assert.Equal(t, 0, p.Games)
	assert.Equal(t, 0.0, p.BattingAverage)
	assert.False(t, p.IsEdited)
}

func TestParsePatch_RejectsUnknownFields(t *testing.T) {
	_, err := ParsePatch([]byte(`{"hits": 10, "favorite_color": "red"}`))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "favorite_color")
}

func TestParsePatch_RejectsIdentity(t *testing.T) {
	_, err := ParsePatch([]byte(`{"id": 99}`))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestParsePatch_RejectsWrongTypes(t *testing.T) {
	_, err := ParsePatch([]byte(`{"games": "many"}`))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	assert.Contains(t, err.Error(), "games")
}

func TestParsePatch_RejectsNonObjectPayload(t *testing.T) {
	_, err := ParsePatch([]byte(`[1, 2, 3]`))
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

func TestApplyEdit_PartialUpdateMarksEdited(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"home_runs": 715}`))
	require.NoError(t, err)

	p := Player{ID: 3, Name: "Babe Ruth", Position: "RF", HomeRuns: 714, Hits: 2873}
	patch.ApplyEdit(&p)

	assert.Equal(t, 715, p.HomeRuns)
	// Untouched fields survive.
	assert.Equal(t, "Babe Ruth", p.Name)
	assert.Equal(t, "RF", p.Position)
	assert.Equal(t, 2873, p.Hits)
	// An edit marks the record unless the payload says otherwise.
	assert.True(t, p.IsEdited)
}

func TestApplyEdit_ExplicitFlagWins(t *testing.T) {
	patch, err := ParsePatch([]byte(`{"home_runs": 715, "is_edited": false}`))
	require.NoError(t, err)

	p := Player{ID: 3, HomeRuns: 714, IsEdited: true}
	patch.ApplyEdit(&p)

	assert.Equal(t, 715, p.HomeRuns)
	assert.False(t, p.IsEdited)
}

func TestParsePatch_EmptyPayload(t *testing.T) {
	patch, err := ParsePatch([]byte(`{}`))
	require.NoError(t, err)

	p := Player{ID: 3, Name: "Babe Ruth"}
	patch.ApplyEdit(&p)
	assert.Equal(t, "Babe Ruth", p.Name)
	assert.True(t, p.IsEdited)
}
