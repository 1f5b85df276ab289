package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertJSONResponse decodes the response body into v
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies error response with expected status and message
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	// Error responses are plain text in this API
	assert.Contains(t, string(body), expectedMessage, "error message mismatch")
}

// AssertScore verifies a slot view's score and that its breakdown adds up
func AssertScore(t *testing.T, view *service.SlotView, expected int) {
	t.Helper()
	assert.Equal(t, expected, view.Score, "unexpected score")

	b := view.Breakdown
	sum := b.Additions + b.Conversions + b.Epiphany + b.ConversionCost + b.DuplicationCost + b.RemovalCost + b.BasicRemovalBonus
	assert.Equal(t, view.Score, sum, "breakdown does not add up to the score")
	assert.Equal(t, view.Score, b.Total)
	assert.Equal(t, view.Score > view.ScoreLimit, view.OverLimit)
}
