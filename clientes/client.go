// Package clientes is the authenticated client for the /clientes resource.
package clientes

import (
	"context"

	"github.com/kochabx/vetclinic/core/net/http"
	"github.com/kochabx/vetclinic/core/validator"
	"github.com/kochabx/vetclinic/errors"
	"github.com/kochabx/vetclinic/log"
)

const collection = "clientes"

// TokenSource yields the current session token, "" when there is none.
// auth.Manager implements it.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenSource
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// StaticToken always yields token
func StaticToken(token string) TokenSource {
	return TokenFunc(func(context.Context) (string, error) {
		return token, nil
	})
}

// Client performs CRUD on clientes. The token is read before every request,
// so a login or logout is picked up by the next call.
type Client struct {
	client    http.Clienter
	tokens    TokenSource
	validator validator.Validator
	logger    *log.Logger
}

// Option configures a Client
type Option func(*Client)

func WithValidator(v validator.Validator) Option {
	return func(c *Client) {
		c.validator = v
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// New creates a Client
func New(client http.Clienter, tokens TokenSource, opts ...Option) *Client {
	c := &Client{
		client:    client,
		tokens:    tokens,
		validator: validator.Validate,
		logger:    log.G,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// List returns every cliente of the authenticated clinic
func (c *Client) List(ctx context.Context) ([]Cliente, error) {
	var out []Cliente
	if err := c.do(ctx, errors.ErrFetch, http.MethodGet, http.Join("/", collection), nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []Cliente{}
	}
	return out, nil
}

// Get returns one cliente
func (c *Client) Get(ctx context.Context, id int) (*Cliente, error) {
	var out Cliente
	if err := c.do(ctx, errors.ErrFetch, http.MethodGet, http.ResourcePath(collection, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates and submits a new cliente, returning the stored record
func (c *Client) Create(ctx context.Context, in Cliente) (*Cliente, error) {
	if err := c.validator.StructCtx(ctx, in); err != nil {
		return nil, errors.Validation(errors.ErrCreate, err)
	}

	var out Cliente
	if err := c.do(ctx, errors.ErrCreate, http.MethodPost, http.Join("/", collection), in, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().Int("id", out.ID).Msg("cliente created")
	return &out, nil
}

// Update replaces cliente id with in
func (c *Client) Update(ctx context.Context, id int, in Cliente) (*Cliente, error) {
	if err := c.validator.StructCtx(ctx, in); err != nil {
		return nil, errors.Validation(errors.ErrUpdate, err)
	}

	var out Cliente
	if err := c.do(ctx, errors.ErrUpdate, http.MethodPut, http.ResourcePath(collection, id), in, &out); err != nil {
		return nil, err
	}
	c.logger.Debug().Int("id", id).Msg("cliente updated")
	return &out, nil
}

// Delete removes cliente id. The service answers 204 with no body.
func (c *Client) Delete(ctx context.Context, id int) error {
	if err := c.do(ctx, errors.ErrDelete, http.MethodDelete, http.ResourcePath(collection, id), nil, nil); err != nil {
		return err
	}
	c.logger.Debug().Int("id", id).Msg("cliente deleted")
	return nil
}

func (c *Client) do(ctx context.Context, op *errors.Error, method, path string, body, dest any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return errors.Storage(op, err)
	}

	opts := []func(*http.RequestOption){
		http.WithContext(ctx),
		http.WithBearer(token),
	}
	if dest != nil {
		opts = append(opts, http.WithResponse(dest))
	}

	if _, err = c.client.Request(method, path, body, opts...); err != nil {
		return http.Classify(op, err)
	}
	return nil
}
