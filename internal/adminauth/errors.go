package adminauth

import "errors"

// Signup failures. Each one names the exact check that rejected the input so
// clients can correct it.
var (
	ErrInvalidEmail   = errors.New("adminauth: email must be a valid email address")
	ErrWeakPassword   = errors.New("adminauth: password must be at least 8 characters")
	ErrInvalidInvite  = errors.New("adminauth: invalid invite code")
	ErrDuplicateAdmin = errors.New("adminauth: admin already exists")
)

// ErrInvalidCredentials is returned for every login failure: malformed email,
// unknown account, or wrong password. The merged error keeps responses from
// revealing which accounts exist.
var ErrInvalidCredentials = errors.New("adminauth: invalid email or password")

// Verification failures.
var (
	ErrInvalidToken  = errors.New("adminauth: invalid token")
	ErrTokenExpired  = errors.New("adminauth: token expired")
	ErrAdminNotFound = errors.New("adminauth: admin not found")
)
