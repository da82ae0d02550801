package adminauth

import (
	"regexp"
	"strings"
	"sync"
	"time"
)

// Admin is the redacted view handed to callers. Salt and hash never leave the
// directory.
type Admin struct {
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

type record struct {
	email     string
	createdAt time.Time
	salt      string
	hash      string
}

func (r *record) view() Admin {
	return Admin{Email: r.email, CreatedAt: r.createdAt}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Directory is the in-process registry of administrator accounts, keyed by
// normalized email. Records are immutable once inserted and never deleted or
// updated, so a single lock around the map is all the coordination required.
// State lives for the process lifetime only; a restart clears every account.
type Directory struct {
	mu      sync.RWMutex
	records map[string]*record
}

// NewDirectory returns an empty directory.
func NewDirectory() *Directory {
	return &Directory{records: make(map[string]*record)}
}

// Signup validates input and inserts a new account. Nothing is written when
// any check fails.
func (d *Directory) Signup(email, password, invite string) (Admin, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return Admin{}, ErrInvalidEmail
	}
	if len(password) < minPasswordLen {
		return Admin{}, ErrWeakPassword
	}
	if !subtleCompare(invite, inviteCode) {
		return Admin{}, ErrInvalidInvite
	}

	d.mu.RLock()
	_, exists := d.records[email]
	d.mu.RUnlock()
	if exists {
		return Admin{}, ErrDuplicateAdmin
	}

	// Key derivation is CPU-bound, so it runs outside the lock. The insert
	// rechecks the key in case a concurrent signup won the race.
	salt, err := newSalt()
	if err != nil {
		return Admin{}, err
	}
	hash := hashPassword(password, salt)

	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.records[email]; ok {
		return Admin{}, ErrDuplicateAdmin
	}
	rec := &record{email: email, createdAt: time.Now().UTC(), salt: salt, hash: hash}
	d.records[email] = rec
	return rec.view(), nil
}

// Login verifies credentials by recomputing the hash under the stored salt.
// Malformed emails, unknown accounts, and wrong passwords all collapse into
// ErrInvalidCredentials.
func (d *Directory) Login(email, password string) (Admin, error) {
	email = normalizeEmail(email)
	if !emailPattern.MatchString(email) {
		return Admin{}, ErrInvalidCredentials
	}
	d.mu.RLock()
	rec, ok := d.records[email]
	d.mu.RUnlock()
	if !ok {
		return Admin{}, ErrInvalidCredentials
	}
	attempt := hashPassword(password, rec.salt)
	if !subtleCompare(attempt, rec.hash) {
		return Admin{}, ErrInvalidCredentials
	}
	return rec.view(), nil
}

// Find resolves the redacted view for an email, normalizing it first.
func (d *Directory) Find(email string) (Admin, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	rec, ok := d.records[normalizeEmail(email)]
	if !ok {
		return Admin{}, false
	}
	return rec.view(), true
}

// SeedDefault inserts the well-known bootstrap account when the directory is
// empty. Idempotent; a non-empty directory is left untouched.
func (d *Directory) SeedDefault() error {
	d.mu.RLock()
	n := len(d.records)
	d.mu.RUnlock()
	if n > 0 {
		return nil
	}

	salt, err := newSalt()
	if err != nil {
		return err
	}
	hash := hashPassword(defaultAdminPassword, salt)

	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.records) > 0 {
		return nil
	}
	email := normalizeEmail(defaultAdminEmail)
	d.records[email] = &record{email: email, createdAt: time.Now().UTC(), salt: salt, hash: hash}
	return nil
}
