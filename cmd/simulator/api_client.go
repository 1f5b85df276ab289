package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/engine"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api/v1",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

type AuthResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type Session struct {
	ID         string `json:"id"`
	ShortCode  string `json:"shortCode"`
	Tier       int    `json:"tier"`
	SlotCount  int    `json:"slotCount"`
	ScoreLimit int    `json:"scoreLimit"`
}

type SessionDetail struct {
	Session Session    `json:"session"`
	Slots   []SlotView `json:"slots"`
}

type LogEntry struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type SlotView struct {
	Position  int `json:"position"`
	Combatant struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"combatant"`
	State      struct {
		Cards []domain.Card `json:"cards"`
	} `json:"state"`
	Score      int        `json:"score"`
	ScoreLimit int        `json:"scoreLimit"`
	OverLimit  bool       `json:"overLimit"`
	ActionLog  []LogEntry `json:"actionLog"`
}

type ActionResult struct {
	Slot  SlotView `json:"slot"`
	Entry LogEntry `json:"entry"`
}

// RegisterUser creates a new user account
func (c *APIClient) RegisterUser(baseName string) (*User, string, error) {
	displayName := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano()%100000)

	body := map[string]string{
		"displayName": displayName,
		"password":    "testpassword123",
	}

	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/register", body, "", http.StatusOK, &result); err != nil {
		return nil, "", fmt.Errorf("register: %w", err)
	}

	return &result.User, result.AccessToken, nil
}

// CreateSession creates a calculator session
func (c *APIClient) CreateSession(token string, tier, slotCount int) (*SessionDetail, error) {
	body := map[string]int{
		"tier":      tier,
		"slotCount": slotCount,
	}

	var detail SessionDetail
	if err := c.do(http.MethodPost, "/sessions", body, token, http.StatusCreated, &detail); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return &detail, nil
}

// GetSession fetches a session by id or short code
func (c *APIClient) GetSession(token, idOrCode string) (*SessionDetail, error) {
	var detail SessionDetail
	if err := c.do(http.MethodGet, "/sessions/"+idOrCode, nil, token, http.StatusOK, &detail); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &detail, nil
}

// ChangeCombatant puts a combatant in a slot
func (c *APIClient) ChangeCombatant(token, sessionID string, position int, combatantID string) (*SlotView, error) {
	path := fmt.Sprintf("/sessions/%s/slots/%d/combatant", sessionID, position)
	body := map[string]string{"combatantId": combatantID}

	var view SlotView
	if err := c.do(http.MethodPut, path, body, token, http.StatusOK, &view); err != nil {
		return nil, fmt.Errorf("change combatant: %w", err)
	}
	return &view, nil
}

// Apply sends one command to a slot
func (c *APIClient) Apply(token, sessionID string, position int, cmd engine.Command) (*ActionResult, error) {
	path := fmt.Sprintf("/sessions/%s/slots/%d/actions", sessionID, position)

	var result ActionResult
	if err := c.do(http.MethodPost, path, cmd, token, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Undo reverts the newest action of a slot
func (c *APIClient) Undo(token, sessionID string, position int) (*SlotView, error) {
	path := fmt.Sprintf("/sessions/%s/slots/%d/undo", sessionID, position)

	var view SlotView
	if err := c.do(http.MethodPost, path, nil, token, http.StatusOK, &view); err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	return &view, nil
}

// GetRules fetches the active point table as raw JSON
func (c *APIClient) GetRules() (json.RawMessage, error) {
	var rules json.RawMessage
	if err := c.do(http.MethodGet, "/rules", nil, "", http.StatusOK, &rules); err != nil {
		return nil, fmt.Errorf("get rules: %w", err)
	}
	return rules, nil
}

// do sends a JSON request and decodes the response into out when the
// status matches.
func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, bodyReader)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, bytes.TrimSpace(bodyBytes))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
