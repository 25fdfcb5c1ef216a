package keycloak

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"account-service/internal/auth"
	"account-service/internal/auth/provider"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// Config holds the provider connection settings. Issuer must be the realm
// issuer URL, e.g. http://localhost:8081/realms/accounts. AdminURL is
// derived from the issuer when empty.
type Config struct {
	Issuer       string
	ClientID     string
	ClientSecret string
	AdminURL     string
}

// Provider implements identity management and credential checks against a
// Keycloak-compatible server. Identity creation and deletion go through the
// admin REST API with a service-account token; sign-in uses the resource
// owner password grant.
type Provider struct {
	oauthCfg  *oauth2.Config
	verifier  *oidc.IDTokenVerifier
	adminBase string
	admin     *http.Client
	logger    *zap.Logger
}

// New initializes the provider using OIDC discovery.
func New(ctx context.Context, cfg Config, logger *zap.Logger) (*Provider, error) {
	if cfg.Issuer == "" || cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("keycloak config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return nil, fmt.Errorf("keycloak: oidc discovery: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
	})

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"email",
		},
	}

	adminBase := cfg.AdminURL
	if adminBase == "" {
		adminBase = strings.Replace(cfg.Issuer, "/realms/", "/admin/realms/", 1)
	}
	adminBase = strings.TrimRight(adminBase, "/")

	// Service-account token source for the admin API. Token refresh reuses
	// the startup context, which stays alive until shutdown.
	cc := &clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     oidcProvider.Endpoint().TokenURL,
	}

	return &Provider{
		oauthCfg:  oauthCfg,
		verifier:  verifier,
		adminBase: adminBase,
		admin:     cc.Client(ctx),
		logger:    logger,
	}, nil
}

type createUserRequest struct {
	Username    string             `json:"username"`
	Email       string             `json:"email"`
	Enabled     bool               `json:"enabled"`
	Credentials []createCredential `json:"credentials"`
}

type createCredential struct {
	Type      string `json:"type"`
	Value     string `json:"value"`
	Temporary bool   `json:"temporary"`
}

// CreateIdentity registers the credentials with the provider. The new
// identity id is read from the Location header; a 2xx response without one
// yields (nil, nil) so the caller can treat it as a contract violation.
func (p *Provider) CreateIdentity(
	ctx context.Context,
	email string,
	password string,
) (*auth.Identity, error) {

	body, err := json.Marshal(createUserRequest{
		Username: email,
		Email:    email,
		Enabled:  true,
		Credentials: []createCredential{
			{Type: "password", Value: password, Temporary: false},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("keycloak: marshal create request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		p.adminBase+"/users",
		bytes.NewReader(body),
	)
	if err != nil {
		return nil, fmt.Errorf("keycloak: build create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.admin.Do(req)
	if err != nil {
		return nil, fmt.Errorf("keycloak: create identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := readErrorMessage(resp)
		p.logger.Warn("keycloak rejected identity creation",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, &provider.Error{Message: msg}
	}

	loc := resp.Header.Get("Location")
	if loc == "" {
		return nil, nil
	}

	return &auth.Identity{
		ID:    path.Base(loc),
		Email: email,
	}, nil
}

// DeleteIdentity removes the identity by id.
func (p *Provider) DeleteIdentity(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodDelete,
		p.adminBase+"/users/"+id,
		nil,
	)
	if err != nil {
		return fmt.Errorf("keycloak: build delete request: %w", err)
	}

	resp, err := p.admin.Do(req)
	if err != nil {
		return fmt.Errorf("keycloak: delete identity: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf(
			"keycloak: delete identity %s: status %d", id, resp.StatusCode,
		)
	}

	return nil
}

// VerifyPassword checks credentials via the password grant and returns the
// provider's token payload as the session.
func (p *Provider) VerifyPassword(
	ctx context.Context,
	email string,
	password string,
) (*auth.Session, error) {

	tok, err := p.oauthCfg.PasswordCredentialsToken(ctx, email, password)
	if err != nil {
		var rErr *oauth2.RetrieveError
		if errors.As(err, &rErr) {
			return nil, &provider.Error{Message: retrieveMessage(rErr)}
		}
		return nil, fmt.Errorf("keycloak: password grant: %w", err)
	}

	sess := &auth.Session{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
	}
	if !tok.Expiry.IsZero() {
		sess.ExpiresIn = int64(time.Until(tok.Expiry).Seconds())
	}

	return sess, nil
}

// VerifyToken validates a provider-issued bearer token and returns its
// subject, which equals the identity id.
func (p *Provider) VerifyToken(ctx context.Context, raw string) (string, error) {
	tok, err := p.verifier.Verify(ctx, raw)
	if err != nil {
		return "", fmt.Errorf("keycloak: verify token: %w", err)
	}
	return tok.Subject, nil
}

type apiError struct {
	ErrorMessage     string `json:"errorMessage"`
	ErrorDescription string `json:"error_description"`
	ErrorCode        string `json:"error"`
}

// readErrorMessage extracts the provider's human-readable rejection message
// from an admin API error response.
func readErrorMessage(resp *http.Response) string {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(body) == 0 {
		return http.StatusText(resp.StatusCode)
	}

	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil {
		switch {
		case apiErr.ErrorMessage != "":
			return apiErr.ErrorMessage
		case apiErr.ErrorDescription != "":
			return apiErr.ErrorDescription
		case apiErr.ErrorCode != "":
			return apiErr.ErrorCode
		}
	}

	return http.StatusText(resp.StatusCode)
}

func retrieveMessage(rErr *oauth2.RetrieveError) string {
	var apiErr apiError
	if err := json.Unmarshal(rErr.Body, &apiErr); err == nil {
		switch {
		case apiErr.ErrorDescription != "":
			return apiErr.ErrorDescription
		case apiErr.ErrorCode != "":
			return apiErr.ErrorCode
		}
	}
	return "invalid credentials"
}
