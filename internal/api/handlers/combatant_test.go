package handlers_test

import (
	"net/http"
	"testing"

	"github.com/asterah/chaos-full-nightmare/internal/api/handlers"
	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombatantHandler_GetAll(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp, err := http.Get(ts.APIURL("/combatants"))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result handlers.CombatantsResponse
	testutil.AssertJSONResponse(t, resp, &result)
	require.Len(t, result.Combatants, 24)
	assert.Equal(t, domain.DefaultCombatantID, result.Combatants[0].ID)
	for _, c := range result.Combatants {
		assert.Len(t, c.Deck, 8, "combatant %s", c.ID)
	}
}

func TestCombatantHandler_Get(t *testing.T) {
	ts := testutil.NewTestServer(t)
	custom := testutil.NewCombatantBuilder().WithName("Trainee").Build(t, ts.DB.DB)

	tests := []struct {
		name           string
		id             string
		expectedStatus int
		checkResponse  func(*testing.T, handlers.CombatantResponse)
	}{
		{
			name:           "catalog combatant",
			id:             "mika",
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, c handlers.CombatantResponse) {
				assert.Equal(t, "Mika", c.Name)
				assert.True(t, c.Deck[7].IsUltimate)
				assert.True(t, c.Deck[7].HasEffect(domain.CardEffectUnique))
			},
		},
		{
			name:           "custom combatant",
			id:             custom.ID,
			expectedStatus: http.StatusOK,
			checkResponse: func(t *testing.T, c handlers.CombatantResponse) {
				assert.Equal(t, "Trainee", c.Name)
				assert.Len(t, c.Deck, 3)
			},
		},
		{
			name:           "unknown combatant",
			id:             "nobody",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Get(ts.APIURL("/combatants/" + tt.id))
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.checkResponse != nil {
				var c handlers.CombatantResponse
				testutil.AssertJSONResponse(t, resp, &c)
				tt.checkResponse(t, c)
			}
		})
	}
}

func TestCombatantHandler_Sync(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	tests := []struct {
		name           string
		token          string
		expectedStatus int
	}{
		{name: "signed in", token: token, expectedStatus: http.StatusOK},
		{name: "anonymous", expectedStatus: http.StatusUnauthorized},
		{name: "bad token", token: "not-a-jwt", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := call(t, "POST", ts.APIURL("/combatants/sync"), nil, tt.token)
			defer resp.Body.Close()
			require.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusOK {
				var result handlers.SyncResponse
				testutil.AssertJSONResponse(t, resp, &result)
				assert.Equal(t, 24, result.Synced)
			}
		})
	}
}
