package describe

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

type fakeStore struct {
	players      map[int]model.Player
	descriptions map[int]string
	saveErr      error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		players:      make(map[int]model.Player),
		descriptions: make(map[int]string),
	}
}

func (f *fakeStore) Player(ctx context.Context, id int) (*model.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeStore) Description(ctx context.Context, playerID int) (string, bool, error) {
	text, ok := f.descriptions[playerID]
	return text, ok, nil
}

func (f *fakeStore) SaveDescription(ctx context.Context, playerID int, text string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.descriptions[playerID] = text
	return nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Describe(ctx context.Context, p model.Player) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func TestGetOrGenerate_GeneratesOnceAndCaches(t *testing.T) {
	st := newFakeStore()
	st.players[7] = model.Player{ID: 7, Name: "Babe Ruth"}
	gen := &fakeGenerator{text: "The Sultan of Swat."}
	svc := New(st, gen, nil)

	first, err := svc.GetOrGenerate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "The Sultan of Swat.", first)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, "The Sultan of Swat.", st.descriptions[7])

	second, err := svc.GetOrGenerate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls, "cached text is served without another generation call")
}

func TestGetOrGenerate_UnknownPlayer(t *testing.T) {
	st := newFakeStore()
	gen := &fakeGenerator{text: "unused"}
	svc := New(st, gen, nil)

	_, err := svc.GetOrGenerate(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, 0, gen.calls)
}

func TestGetOrGenerate_GenerationFailurePropagates(t *testing.T) {
	st := newFakeStore()
	st.players[7] = model.Player{ID: 7, Name: "Babe Ruth"}
	gen := &fakeGenerator{err: apperr.New(apperr.KindExternalService, "provider timeout")}
	svc := New(st, gen, nil)

	_, err := svc.GetOrGenerate(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindExternalService))
	assert.Empty(t, st.descriptions, "no fallback text is cached on failure")
}

func TestGetOrGenerate_SaveFailurePropagates(t *testing.T) {
	st := newFakeStore()
	st.players[7] = model.Player{ID: 7, Name: "Babe Ruth"}
	st.saveErr = apperr.New(apperr.KindStorage, "disk full")
	gen := &fakeGenerator{text: "text"}
	svc := New(st, gen, nil)

	_, err := svc.GetOrGenerate(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindStorage))
}

func TestGetOrGenerate_CachedEntrySkipsPlayerLoad(t *testing.T) {
	st := newFakeStore()
	// No player row: a stale cache entry still serves (no invalidation on
	// edit or delete by design).
	st.descriptions[9] = "cached text"
	gen := &fakeGenerator{text: "fresh"}
	svc := New(st, gen, nil)

	text, err := svc.GetOrGenerate(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, "cached text", text)
	assert.Equal(t, 0, gen.calls)
}
