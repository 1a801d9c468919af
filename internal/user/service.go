package user

import (
	"context"
	"fmt"

	"securecampus/internal/apperr"
	"securecampus/internal/audit"
	"securecampus/internal/auth"
	"securecampus/internal/metrics"
)

// Store is the slice of the repository the auth flow needs.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Create(ctx context.Context, u *User) error
}

// EventRecorder appends audit entries; writes never fail the caller.
type EventRecorder interface {
	Record(ctx context.Context, e audit.Entry)
}

// Service implements registration, login, and user lookups.
type Service struct {
	store   Store
	events  EventRecorder
	limiter auth.LoginLimiter
	hasher  auth.Hasher
	tokens  *auth.TokenIssuer
}

// NewService wires the auth flow dependencies.
func NewService(store Store, events EventRecorder, limiter auth.LoginLimiter, hasher auth.Hasher, tokens *auth.TokenIssuer) *Service {
	return &Service{store: store, events: events, limiter: limiter, hasher: hasher, tokens: tokens}
}

// RegisterInput carries the validated registration payload.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// LoginInput carries the login payload.
type LoginInput struct {
	Email    string
	Password string
}

// AuthResult is the shared success shape of login and registration.
type AuthResult struct {
	User        *User  `json:"user"`
	AccessToken string `json:"access_token"`
}

// Register hashes the password, creates the user, records a USER_CREATED
// event and issues a token so the caller is logged in immediately.
func (s *Service) Register(ctx context.Context, in RegisterInput, meta audit.Meta) (*AuthResult, error) {
	role := in.Role
	if role == "" {
		role = auth.RoleStudent
	}
	if !auth.ValidRole(role) {
		return nil, apperr.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.Create(ctx, u); err != nil {
		return nil, err
	}

	s.events.Record(ctx, audit.Entry{
		UserID:    &u.ID,
		Action:    audit.ActionUserCreated,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   "User registered: " + u.Email,
	})

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, AccessToken: token}, nil
}

// Login runs the rate check, credential check, and token issuance.
// A missing account and a wrong password are indistinguishable to the
// caller so the endpoint cannot be used to enumerate users.
func (s *Service) Login(ctx context.Context, in LoginInput, meta audit.Meta) (*AuthResult, error) {
	if s.limiter.IsLimited(ctx, in.Email) {
		metrics.LoginAttempts.WithLabelValues("rate_limited").Inc()
		s.events.Record(ctx, audit.Entry{
			Action:    audit.ActionSuspiciousActivity,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
			Details:   "Rate limit exceeded for email: " + in.Email,
		})
		return nil, apperr.ErrTooManyAttempts
	}

	u, err := s.store.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if u == nil || !s.hasher.Verify(in.Password, u.PasswordHash) {
		metrics.LoginAttempts.WithLabelValues("failure").Inc()
		s.limiter.RecordFailure(ctx, in.Email)
		s.events.Record(ctx, audit.Entry{
			Action:    audit.ActionFailedLogin,
			IPAddress: meta.IPAddress,
			UserAgent: meta.UserAgent,
			Details:   "Failed login attempt for: " + in.Email,
		})
		return nil, apperr.ErrInvalidCredentials
	}

	s.limiter.Clear(ctx, in.Email)
	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.events.Record(ctx, audit.Entry{
		UserID:    &u.ID,
		Action:    audit.ActionLogin,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Details:   "Successful login: " + u.Email,
	})

	token, err := s.tokens.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, AccessToken: token}, nil
}

// Get returns a single user by id.
func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.ErrNotFound
	}
	return u, nil
}

// List returns every user.
func (s *Service) List(ctx context.Context) ([]User, error) {
	return s.store.FindAll(ctx)
}
