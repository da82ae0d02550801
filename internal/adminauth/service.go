// Package adminauth is the administrator credential and session-token
// subsystem: an in-memory directory of administrator accounts, salted
// password hashing, invite-gated signup, and issuance/verification of signed
// expiring bearer tokens. Everything is process-local; a restart clears all
// accounts and invalidates every outstanding token.
package adminauth

import "time"

// Fixed process-wide secrets. This is a single-process, single-secret trust
// root: tokens are honored only by processes compiled with the same constants,
// and there is no rotation mechanism. Known weakness, kept deliberately;
// loading from a managed secret store would change token compatibility across
// restarts.
const (
	inviteCode  = "CREATORUM-ADMIN-INVITE-2026"
	tokenSecret = "creat0rum_admin_token_secret_v1"

	tokenTTL       = 8 * time.Hour
	minPasswordLen = 8
)

// Well-known bootstrap account, seeded so the service is operable out of the
// box. Unsuitable for any environment where it cannot be rotated immediately.
const (
	defaultAdminEmail    = "admin@creatorum.local"
	defaultAdminPassword = "Admin@12345"
)

// Bootstrap describes the seeded default account and the signup invite code.
// Operational bootstrapping information, not a security control.
type Bootstrap struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	InviteCode string `json:"invite_code"`
}

// Service is the only surface the HTTP layer talks to. It composes the
// credential directory with the token codec and performs no logic of its own
// beyond delegation.
type Service struct {
	dir   *Directory
	codec codec
}

// Option configures Service behavior.
type Option func(*Service)

// WithClock overrides the token codec time source (useful for tests).
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.codec.now = fn
		}
	}
}

// NewService constructs Service with an empty directory.
func NewService(opts ...Option) *Service {
	s := &Service{
		dir:   NewDirectory(),
		codec: codec{secret: []byte(tokenSecret)},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SeedDefault seeds the bootstrap account if the directory is empty.
func (s *Service) SeedDefault() error {
	return s.dir.SeedDefault()
}

// Signup registers a new administrator gated by the invite code.
func (s *Service) Signup(email, password, invite string) (Admin, error) {
	return s.dir.Signup(email, password, invite)
}

// Login authenticates credentials and mints a bearer token bound to the
// account's normalized email.
func (s *Service) Login(email, password string) (string, Admin, error) {
	admin, err := s.dir.Login(email, password)
	if err != nil {
		return "", Admin{}, err
	}
	token, err := s.codec.Issue(admin.Email)
	if err != nil {
		return "", Admin{}, err
	}
	return token, admin, nil
}

// Verify validates a bearer token and re-resolves its subject in the
// directory, so tokens minted for accounts this process no longer knows about
// are rejected.
func (s *Service) Verify(token string) (Admin, error) {
	payload, err := s.codec.Verify(token)
	if err != nil {
		return Admin{}, err
	}
	admin, ok := s.dir.Find(payload.Email)
	if !ok {
		return Admin{}, ErrAdminNotFound
	}
	return admin, nil
}

// BootstrapCredentials returns the well-known bootstrap account and invite
// code for operational documentation.
func (s *Service) BootstrapCredentials() Bootstrap {
	return Bootstrap{
		Email:      defaultAdminEmail,
		Password:   defaultAdminPassword,
		InviteCode: inviteCode,
	}
}
