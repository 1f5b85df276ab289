package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/asterah/chaos-full-nightmare/internal/domain"
	"github.com/asterah/chaos-full-nightmare/internal/service"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	displayName string
	password    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		displayName: fmt.Sprintf("testuser_%s", uuid.New().String()[:8]),
		password:    "testpassword123",
	}
}

// WithDisplayName sets the display name
func (b *UserBuilder) WithDisplayName(name string) *UserBuilder {
	b.displayName = name
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		DisplayName:  b.displayName,
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthResponse matches the API auth response
type AuthResponse struct {
	User struct {
		ID          string `json:"id"`
		DisplayName string `json:"displayName"`
	} `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// BuildAndAuthenticate creates a user via API and returns the user and access token
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"displayName": b.displayName,
		"password":    b.password,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var authResp AuthResponse
	if err := json.NewDecoder(resp.Body).Decode(&authResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	userID, _ := uuid.Parse(authResp.User.ID)
	user := &domain.User{
		ID:          userID,
		DisplayName: authResp.User.DisplayName,
	}

	return user, authResp.AccessToken
}

// SessionBuilder creates calculator sessions through the session service
type SessionBuilder struct {
	owner     *domain.User
	tier      int
	slotCount int
}

// NewSessionBuilder creates a new SessionBuilder with default values
func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		tier:      1,
		slotCount: 1,
	}
}

// WithOwner sets the session owner
func (b *SessionBuilder) WithOwner(user *domain.User) *SessionBuilder {
	b.owner = user
	return b
}

// WithTier sets the tier
func (b *SessionBuilder) WithTier(tier int) *SessionBuilder {
	b.tier = tier
	return b
}

// WithSlotCount sets the number of slots
func (b *SessionBuilder) WithSlotCount(count int) *SessionBuilder {
	b.slotCount = count
	return b
}

// Build creates the session. Without an owner a fresh user is created.
func (b *SessionBuilder) Build(t *testing.T, ts *TestServer) *domain.CalcSession {
	t.Helper()

	owner := b.owner
	if owner == nil {
		owner, _ = NewUserBuilder().Build(t, ts.DB.DB)
	}

	session, err := ts.Services.Session.Create(context.Background(), service.CreateSessionInput{
		OwnerID:   owner.ID,
		Tier:      b.tier,
		SlotCount: b.slotCount,
	})
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

// CombatantBuilder creates combatants with a hand-built deck
type CombatantBuilder struct {
	id   string
	name string
	deck []domain.Card
}

// NewCombatantBuilder creates a builder with a three-card starter deck
func NewCombatantBuilder() *CombatantBuilder {
	id := fmt.Sprintf("combatant_%s", uuid.New().String()[:8])
	return &CombatantBuilder{
		id:   id,
		name: id,
		deck: []domain.Card{
			{ID: 1, Type: domain.CardTypeBasic, OriginalType: domain.CardTypeBasic, State: domain.CardStateNone},
			{ID: 2, Type: domain.CardTypeUnique, OriginalType: domain.CardTypeUnique, State: domain.CardStateNone},
			{ID: 3, Type: domain.CardTypeNeutral, OriginalType: domain.CardTypeNeutral, State: domain.CardStateNone},
		},
	}
}

// WithID sets the combatant ID
func (b *CombatantBuilder) WithID(id string) *CombatantBuilder {
	b.id = id
	return b
}

// WithName sets the display name
func (b *CombatantBuilder) WithName(name string) *CombatantBuilder {
	b.name = name
	return b
}

// WithDeck replaces the deck
func (b *CombatantBuilder) WithDeck(deck []domain.Card) *CombatantBuilder {
	b.deck = deck
	return b
}

// Build creates the combatant in the database
func (b *CombatantBuilder) Build(t *testing.T, db *gorm.DB) *domain.Combatant {
	t.Helper()

	combatant := &domain.Combatant{
		ID:           b.id,
		Name:         b.name,
		SortOrder:    1000,
		Deck:         domain.CloneCards(b.deck),
		LastSyncedAt: time.Now(),
	}

	if err := db.Create(combatant).Error; err != nil {
		t.Fatalf("failed to create combatant: %v", err)
	}

	return combatant
}

// CreateAuthenticatedRequest creates an HTTP request with auth token
func CreateAuthenticatedRequest(t *testing.T, method, url string, body interface{}, token string) *http.Request {
	t.Helper()

	var bodyReader *bytes.Buffer
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewBuffer(jsonBody)
	} else {
		bodyReader = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), method, url, bodyReader)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// DoRequest sends req and fails the test on transport errors
func DoRequest(t *testing.T, req *http.Request) *http.Response {
	t.Helper()

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	t.Cleanup(func() {
		resp.Body.Close()
	})
	return resp
}
