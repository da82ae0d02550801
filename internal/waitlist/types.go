// Package waitlist holds the signup domain: entry types, request
// canonicalization, and the persistence contract implemented by the Postgres
// store and the in-memory store.
package waitlist

import (
	"context"
	"errors"
	"time"
)

var (
	ErrDuplicateEmail = errors.New("waitlist: email already on waitlist")
	ErrNotFound       = errors.New("waitlist: not found")
)

// Roles accepted on signup.
const (
	RoleCreator     = "Creator"
	RoleBrand       = "Brand"
	RoleSeller      = "Seller"
	RoleJustJoining = "Just Joining"
)

// Goals accepted on signup.
const (
	GoalFindBrandDeals = "find brand deals"
	GoalGrowing        = "growing as a creator"
	GoalDiscovering    = "discovering creators"
	GoalManaging       = "managing collaboration and deals"
)

// Entry is one signup on the waitlist.
type Entry struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Goals     []string  `json:"goals"`
}

// CreateInput is a canonicalized signup, produced by ParseCreate.
type CreateInput struct {
	FullName string
	Email    string
	Role     string
	Goals    []string
}

// Service defines waitlist persistence operations.
type Service interface {
	Create(ctx context.Context, in CreateInput) (Entry, error)
	List(ctx context.Context, limit, offset int) ([]Entry, error)
	Count(ctx context.Context) (int64, error)
}
