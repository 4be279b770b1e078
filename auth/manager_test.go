package auth

import (
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kochabx/vetclinic/core/net/http"
	"github.com/kochabx/vetclinic/errors"
	"github.com/kochabx/vetclinic/log"
	"github.com/kochabx/vetclinic/session"
	"github.com/kochabx/vetclinic/store"
	"github.com/kochabx/vetclinic/store/memory"
)

func newManager(t *testing.T, handler stdhttp.HandlerFunc, seed map[string]string) (*Manager, *memory.Store) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	quiet := log.NewWriter(io.Discard)
	s := memory.New(seed)
	client := http.New(http.WithBaseURL(server.URL), http.WithLogger(quiet))
	return New(client, s, WithLogger(quiet)), s
}

func loginHandler(t *testing.T) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "/veterinarias/login", r.URL.Path)
		assert.Equal(t, http.ContentTypeForm, r.Header.Get(http.HeaderContentType))
		assert.NoError(t, r.ParseForm())

		if r.PostForm.Get("username") != "vet1" || r.PostForm.Get("password") != "secret" {
			w.WriteHeader(stdhttp.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Correo o contraseña incorrectos"}`))
			return
		}
		_ = json.NewEncoder(w).Encode(Token{AccessToken: "abc123", TokenType: "bearer"})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, loginHandler(t), nil)

	token, err := m.Login(ctx, "vet1", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc123", token.AccessToken)
	assert.Equal(t, "bearer", token.TokenType)

	got, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)
	assert.Equal(t, map[string]string{session.KeyToken: "abc123"}, s.Snapshot())

	ok, err := m.Authenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoginReplacesToken(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, loginHandler(t), map[string]string{session.KeyToken: "old"})

	_, err := m.Login(ctx, "vet1", "secret")
	require.NoError(t, err)

	got, _ := m.Token(ctx)
	assert.Equal(t, "abc123", got)
}

func TestLoginFailedKeepsState(t *testing.T) {
	ctx := context.Background()
	seed := map[string]string{session.KeyToken: "old", session.KeyDisplayName: "Clinica Sol"}
	m, s := newManager(t, loginHandler(t), seed)

	token, err := m.Login(ctx, "vet1", "wrong")
	require.Error(t, err)
	assert.Nil(t, token)

	assert.ErrorIs(t, err, errors.ErrLoginFailed)
	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, 401, errors.StatusCode(err))
	assert.Equal(t, "Correo o contraseña incorrectos", errors.Detail(err))

	assert.Equal(t, seed, s.Snapshot())
}

func TestLoginWithoutAccessToken(t *testing.T) {
	m, s := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
	}, nil)

	_, err := m.Login(context.Background(), "vet1", "secret")
	assert.ErrorIs(t, err, errors.ErrLoginFailed)
	assert.Equal(t, errors.KindDecode, errors.KindOf(err))
	assert.Equal(t, stdhttp.StatusOK, errors.StatusCode(err))
	assert.Empty(t, s.Snapshot())
}

func TestLoginWithoutAccessTokenKeepsStatus(t *testing.T) {
	m, s := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusCreated)
		_, _ = w.Write([]byte(`{}`))
	}, map[string]string{session.KeyToken: "old"})

	_, err := m.Login(context.Background(), "vet1", "secret")
	assert.ErrorIs(t, err, errors.ErrLoginFailed)
	assert.Equal(t, errors.KindDecode, errors.KindOf(err))
	assert.Equal(t, stdhttp.StatusCreated, errors.StatusCode(err))
	assert.Equal(t, map[string]string{session.KeyToken: "old"}, s.Snapshot())
}

func TestLoginTransportFailure(t *testing.T) {
	server := httptest.NewServer(stdhttp.NotFoundHandler())
	server.Close()

	quiet := log.NewWriter(io.Discard)
	m := New(http.New(http.WithBaseURL(server.URL), http.WithLogger(quiet)), memory.New(nil), WithLogger(quiet))

	_, err := m.Login(context.Background(), "vet1", "secret")
	assert.ErrorIs(t, err, errors.ErrLoginFailed)
	assert.True(t, errors.IsTransport(err))
	assert.Equal(t, 0, errors.StatusCode(err))
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		t.Errorf("logout must not send requests, got %s %s", r.Method, r.URL.Path)
	}, map[string]string{session.KeyToken: "abc123", session.KeyDisplayName: "Clinica Sol", "other": "kept"})

	require.NoError(t, m.Logout(ctx))
	require.NoError(t, m.Logout(ctx))

	token, err := m.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	name, err := m.DisplayName(ctx)
	require.NoError(t, err)
	assert.Empty(t, name)

	assert.Equal(t, map[string]string{"other": "kept"}, s.Snapshot())
}

func TestTokenWithoutSession(t *testing.T) {
	m, _ := newManager(t, nil, nil)

	token, err := m.Token(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)

	ok, err := m.Authenticated(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegister(t *testing.T) {
	m, s := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, stdhttp.MethodPost, r.Method)
		assert.Equal(t, "/veterinarias/registro", r.URL.Path)
		assert.Equal(t, http.ContentTypeJSON, r.Header.Get(http.HeaderContentType))

		var vet Veterinaria
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&vet))
		assert.Equal(t, "s3cret", vet.Password)

		vet.ID = 7
		vet.Password = ""
		_ = json.NewEncoder(w).Encode(vet)
	}, nil)

	created, err := m.Register(context.Background(), Veterinaria{
		Nombre:   "Clinica Sol",
		Email:    "sol@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, "Clinica Sol", created.Nombre)
	assert.Empty(t, created.Password)
	assert.Empty(t, s.Snapshot())
}

func TestRegisterInvalid(t *testing.T) {
	m, _ := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		t.Error("invalid payload must not be sent")
	}, nil)

	_, err := m.Register(context.Background(), Veterinaria{Nombre: "Clinica Sol", Email: "not-an-email"})
	assert.ErrorIs(t, err, errors.ErrRegister)
	assert.Equal(t, errors.KindValidation, errors.KindOf(err))
}

func TestRegisterRejected(t *testing.T) {
	m, _ := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"Este correo ya está registrado."}`))
	}, nil)

	_, err := m.Register(context.Background(), Veterinaria{
		Nombre:   "Clinica Sol",
		Email:    "sol@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, errors.ErrRegister)
	assert.True(t, errors.IsBadRequest(err))
	assert.Equal(t, "Este correo ya está registrado.", errors.Detail(err))
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		if r.Header.Get(http.HeaderAuthorization) != "Bearer abc123" {
			w.WriteHeader(stdhttp.StatusUnauthorized)
			return
		}
		_ = json.NewEncoder(w).Encode(Veterinaria{ID: 7, Nombre: "Clinica Sol", Email: "sol@example.com"})
	}, map[string]string{session.KeyToken: "abc123"})

	vet, err := m.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, vet.ID)

	name, err := m.DisplayName(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Clinica Sol", name)

	require.NoError(t, m.Logout(ctx))
	_, err = m.Me(ctx)
	assert.ErrorIs(t, err, errors.ErrProfile)
	assert.True(t, errors.IsUnauthorized(err))
}

func TestClaims(t *testing.T) {
	ctx := context.Background()
	exp := time.Now().Add(30 * time.Minute).Truncate(time.Second)
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "7",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("server-side-secret"))
	require.NoError(t, err)

	m, _ := newManager(t, nil, map[string]string{session.KeyToken: signed})

	claims, err := m.Claims(ctx)
	require.NoError(t, err)
	assert.Equal(t, "7", claims.Subject)
	assert.True(t, exp.Equal(claims.ExpiresAt))
	assert.False(t, claims.Expired(time.Now()))
	assert.True(t, claims.Expired(exp.Add(time.Minute)))
}

func TestClaimsOpaqueToken(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t, nil, map[string]string{session.KeyToken: "abc123"})

	_, err := m.Claims(ctx)
	assert.Equal(t, errors.KindDecode, errors.KindOf(err))

	require.NoError(t, m.Logout(ctx))
	_, err = m.Claims(ctx)
	assert.ErrorIs(t, err, errors.ErrNotAuthenticated)
}

type brokenStore struct {
	store.Store
}

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", io.ErrUnexpectedEOF
}

func (brokenStore) Set(context.Context, string, string) error {
	return io.ErrUnexpectedEOF
}

func TestStorageFailure(t *testing.T) {
	server := httptest.NewServer(loginHandler(t))
	defer server.Close()

	quiet := log.NewWriter(io.Discard)
	m := New(http.New(http.WithBaseURL(server.URL), http.WithLogger(quiet)), brokenStore{}, WithLogger(quiet))

	_, err := m.Login(context.Background(), "vet1", "secret")
	assert.ErrorIs(t, err, errors.ErrSession)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, errors.KindStorage, errors.KindOf(err))

	_, err = m.Token(context.Background())
	assert.ErrorIs(t, err, errors.ErrSession)
}
