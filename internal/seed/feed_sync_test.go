package seed

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlabs/dugout-data/internal/provider/statsapi"
)

// End-to-end over the real feed client: one quirky-named record comes off
// the wire, lands in storage with canonical fields, and a repeat run leaves
// the row untouched.
func TestSync_FromFeedWire(t *testing.T) {
	const feedURL = "https://stats.example.com/api/test/baseball"
	const body = `[{
		"Player name": "Babe Ruth", "position": "RF", "Games": 2503,
		"At-bat": 8399, "Runs": 2174, "Hits": 2873, "Double (2B)": 506,
		"third baseman": 136, "home run": 714, "run batted in": 2213,
		"a walk": 2062, "Strikeouts": 1330, "stolen base": 123,
		"Caught stealing": 117, "AVG": "0.342", "On-base Percentage": "0.474",
		"Slugging Percentage": "0.690", "On-base Plus Slugging": "1.164"
	}]`

	transport := httpmock.NewMockTransport()
	transport.RegisterResponder(http.MethodGet, feedURL,
		httpmock.NewStringResponder(http.StatusOK, body))

	client := statsapi.NewClient(feedURL, 5*time.Second, nil)
	client.SetTransport(transport)

	st := newFakeStore()
	syncer := NewSyncer(client, st, nil)

	result, err := syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Created)

	got := st.players[1]
	assert.Equal(t, "Babe Ruth", got.Name)
	assert.Equal(t, 136, got.Triples)
	assert.Equal(t, 2062, got.Walks)
	assert.False(t, got.IsEdited)

	// Identical feed, second run: same identity, same values.
	result, err = syncer.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, got, st.players[1])
	assert.Len(t, st.players, 1)
}
