package external

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlabs/dugout-data/internal/apperr"
	"github.com/dugoutlabs/dugout-data/internal/model"
)

const testEndpoint = "https://api.openai.com/v1/chat/completions"

func testPlayer() model.Player {
	return model.Player{
		ID: 7, Name: "Babe Ruth", Position: "RF", Games: 2503, AtBats: 8399,
		Hits: 2873, HomeRuns: 714, RBIs: 2213, BattingAverage: 0.342,
		OnBasePercentage: 0.474, SluggingPercentage: 0.690, OPS: 1.164,
		StolenBases: 123,
	}
}

func newTestClient(t *testing.T, apiKey string) *OpenAIClient {
	t.Helper()
	c := NewOpenAIClient(apiKey, testEndpoint, "gpt-4o-mini", 5*time.Second)
	httpmock.ActivateNonDefault(c.httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return c
}

func completionBody(content string) string {
	return `{"choices": [{"message": {"role": "assistant", "content": ` +
		string(mustJSON(content)) + `}}]}`
}

func mustJSON(v any) []byte {
	b, _ := json.Marshal(v)
	return b
}

func TestDescribe_Success(t *testing.T) {
	c := newTestClient(t, "sk-test")

	var gotReq chatRequest
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		func(req *http.Request) (*http.Response, error) {
			require.Equal(t, "Bearer sk-test", req.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(req.Body).Decode(&gotReq))
			return httpmock.NewStringResponse(http.StatusOK,
				completionBody("  A legendary slugger.  ")), nil
		})

	text, err := c.Describe(context.Background(), testPlayer())
	require.NoError(t, err)
	assert.Equal(t, "A legendary slugger.", text, "whitespace is trimmed")

	assert.Equal(t, "gpt-4o-mini", gotReq.Model)
	assert.Equal(t, descriptionMaxTokens, gotReq.MaxTokens)
	assert.InDelta(t, descriptionTemperature, gotReq.Temperature, 0.0001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Contains(t, gotReq.Messages[1].Content, "Babe Ruth")
	assert.Contains(t, gotReq.Messages[1].Content, "0.342")
}

func TestDescribe_MissingAPIKey(t *testing.T) {
	c := newTestClient(t, "")

	_, err := c.Describe(context.Background(), testPlayer())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindConfiguration))
	assert.Zero(t, httpmock.GetTotalCallCount(), "no request is made without a key")
}

func TestDescribe_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t, "sk-test")
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusTooManyRequests, `{"error": {"message": "rate limited"}}`))

	_, err := c.Describe(context.Background(), testPlayer())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindExternalService))
}

func TestDescribe_UndecodableBody(t *testing.T) {
	c := newTestClient(t, "sk-test")
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusOK, `{invalid`))

	_, err := c.Describe(context.Background(), testPlayer())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindExternalService))
}

func TestDescribe_NoChoices(t *testing.T) {
	c := newTestClient(t, "sk-test")
	httpmock.RegisterResponder(http.MethodPost, testEndpoint,
		httpmock.NewStringResponder(http.StatusOK, `{"choices": []}`))

	_, err := c.Describe(context.Background(), testPlayer())
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindExternalService))
}
