// Package auth manages the clinic session: registration, login, logout and
// access to the persisted bearer token.
package auth

import (
	"context"
	"net/url"

	"github.com/golang-jwt/jwt/v5"

	"github.com/kochabx/vetclinic/core/net/http"
	"github.com/kochabx/vetclinic/core/validator"
	"github.com/kochabx/vetclinic/errors"
	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/session"
	"github.com/kochabx/vetclinic/store"
)

const (
	pathRegister = "/veterinarias/registro"
	pathLogin    = "/veterinarias/login"
	pathMe       = "/me"
)

// Manager holds at most one session token in its store. Presence of the
// token is what "authenticated" means; expiry is never checked locally.
type Manager struct {
	client    http.Clienter
	store     store.Store
	validator validator.Validator
	logger    *log.Logger
}

// Option configures a Manager
type Option func(*Manager)

func WithValidator(v validator.Validator) Option {
	return func(m *Manager) {
		m.validator = v
	}
}

func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		m.logger = l
	}
}

// New creates a Manager sending requests through client and persisting the
// session in s
func New(client http.Clienter, s store.Store, opts ...Option) *Manager {
	m := &Manager{
		client:    client,
		store:     s,
		validator: validator.Validate,
		logger:    log.G,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Register creates a clinic account. It never touches the stored session.
func (m *Manager) Register(ctx context.Context, vet Veterinaria) (*Veterinaria, error) {
	if err := m.validator.StructCtx(ctx, vet); err != nil {
		return nil, errors.Validation(errors.ErrRegister, err)
	}

	var created Veterinaria
	_, err := m.client.Request(http.MethodPost, pathRegister, vet,
		http.WithContext(ctx),
		http.WithResponse(&created),
	)
	if err != nil {
		return nil, http.Classify(errors.ErrRegister, err)
	}

	m.logger.Info().Int("id", created.ID).Str("nombre", created.Nombre).Msg("veterinaria registered")
	return &created, nil
}

// Login exchanges credentials for a token and persists it. A failed login
// leaves any previously stored session as it was.
func (m *Manager) Login(ctx context.Context, username, password string) (*Token, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var token Token
	resp, err := m.client.Request(http.MethodPost, pathLogin, form,
		http.WithContext(ctx),
		http.WithResponse(&token),
	)
	if err != nil {
		m.logger.Warn().Err(err).Msg("login rejected")
		return nil, http.Classify(errors.ErrLoginFailed, err)
	}
	if token.AccessToken == "" {
		return nil, errors.Decode(errors.ErrLoginFailed, resp.StatusCode, errors.New(0, "response has no access_token"))
	}

	if err = m.store.Set(ctx, session.KeyToken, token.AccessToken); err != nil {
		return nil, errors.Storage(errors.ErrSession, err)
	}

	m.logger.Info().Msg("logged in")
	return &token, nil
}

// Logout forgets the token and the cached display name. No request is sent,
// and logging out twice is not an error.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, session.KeyToken, session.KeyDisplayName); err != nil {
		return errors.Storage(errors.ErrSession, err)
	}
	m.logger.Debug().Msg("logged out")
	return nil
}

// Token returns the stored token, or "" when there is no session
func (m *Manager) Token(ctx context.Context) (string, error) {
	return m.get(ctx, session.KeyToken)
}

// Authenticated reports whether a token is stored
func (m *Manager) Authenticated(ctx context.Context) (bool, error) {
	token, err := m.Token(ctx)
	return token != "", err
}

// Me fetches the authenticated clinic and caches its name for DisplayName
func (m *Manager) Me(ctx context.Context) (*Veterinaria, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}

	var vet Veterinaria
	_, err = m.client.Request(http.MethodGet, pathMe, nil,
		http.WithContext(ctx),
		http.WithBearer(token),
		http.WithResponse(&vet),
	)
	if err != nil {
		return nil, http.Classify(errors.ErrProfile, err)
	}

	if vet.Nombre != "" {
		if err = m.store.Set(ctx, session.KeyDisplayName, vet.Nombre); err != nil {
			return nil, errors.Storage(errors.ErrSession, err)
		}
	}
	return &vet, nil
}

// DisplayName returns the cached clinic name, or "" if Me was never called
func (m *Manager) DisplayName(ctx context.Context) (string, error) {
	return m.get(ctx, session.KeyDisplayName)
}

// Claims decodes the stored token without verifying its signature
func (m *Manager) Claims(ctx context.Context) (*Claims, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, errors.ErrNotAuthenticated
	}

	var rc jwt.RegisteredClaims
	if _, _, err = jwt.NewParser().ParseUnverified(token, &rc); err != nil {
		return nil, errors.Decode(errors.ErrSession, 0, err)
	}
	return claimsFrom(&rc), nil
}

func (m *Manager) get(ctx context.Context, key string) (string, error) {
	v, err := m.store.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", errors.Storage(errors.ErrSession, err)
	}
	return v, nil
}
