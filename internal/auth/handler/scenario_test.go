package handler

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"

	"account-service/internal/account"
	"account-service/internal/auth"
	"account-service/internal/auth/credentials"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// End-to-end registration flow through the real coordinator, with the
// provider and store replaced by in-memory fakes.

type scenarioStore struct {
	mu      sync.Mutex
	byEmail map[string]account.Record
}

func (s *scenarioStore) FindByEmail(ctx context.Context, email string) (*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.byEmail[strings.ToLower(email)]; ok {
		cp := r
		return &cp, nil
	}
	return nil, nil
}

func (s *scenarioStore) Insert(ctx context.Context, r account.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := strings.ToLower(r.Email)
	if _, ok := s.byEmail[key]; ok {
		return account.ErrDuplicateEmail
	}
	s.byEmail[key] = r
	return nil
}

func (s *scenarioStore) GetByID(ctx context.Context, id uuid.UUID) (*account.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.byEmail {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, nil
}

type scenarioProvider struct{}

func (scenarioProvider) CreateIdentity(ctx context.Context, email, password string) (*auth.Identity, error) {
	return &auth.Identity{ID: uuid.NewString(), Email: email}, nil
}

func (scenarioProvider) DeleteIdentity(ctx context.Context, id string) error {
	return nil
}

func (scenarioProvider) VerifyPassword(ctx context.Context, email, password string) (*auth.Session, error) {
	return &auth.Session{AccessToken: "token", TokenType: "Bearer"}, nil
}

func TestRegistrationFlow(t *testing.T) {
	store := &scenarioStore{byEmail: make(map[string]account.Record)}
	svc := credentials.NewService(store, scenarioProvider{}, zap.NewNop())
	router := setupRouter(svc)

	body := gin.H{"email": "a@b.com", "password": "secret123"}

	// first registration succeeds with a generated id
	w := postJSON(router, "/auth", body)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeBody(t, w)["user"].(map[string]any)
	assert.Equal(t, "a@b.com", user["email"])
	_, err := uuid.Parse(user["id"].(string))
	assert.NoError(t, err)

	// the stored hash verifies against the original password only
	rec := store.byEmail["a@b.com"]
	assert.NoError(t, credentials.VerifyPassword(rec.PasswordHash, "secret123"))
	assert.Error(t, credentials.VerifyPassword(rec.PasswordHash, "hunter2"))

	// the same input submitted again is rejected
	w = postJSON(router, "/auth", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Email already exists", decodeBody(t, w)["message"])

	assert.Len(t, store.byEmail, 1)
}
