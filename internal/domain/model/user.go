package model

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/event"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const minUsernameLength = 3

// User is the account aggregate.
type User struct {
	id           uuid.UUID
	username     string
	email        string
	passwordHash string
	admin        bool
	createdAt    time.Time

	domainEvents []event.DomainEvent
}

// NewUser validates the account fields and creates a customer user.
// The password must arrive already hashed.
func NewUser(username, email, passwordHash string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < minUsernameLength {
		return nil, &valueobject.ValidationError{Field: "username", Reason: "username must be at least 3 characters"}
	}
	if !usernameRe.MatchString(username) {
		return nil, &valueobject.ValidationError{Field: "username", Reason: "username may only contain letters, digits and underscores"}
	}
	if !emailRe.MatchString(email) {
		return nil, &valueobject.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	if passwordHash == "" {
		return nil, &valueobject.ValidationError{Field: "password", Reason: "password hash is required"}
	}

	u := &User{
		id:           uuid.New(),
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		createdAt:    time.Now().UTC(),
		domainEvents: make([]event.DomainEvent, 0, 1),
	}
	u.domainEvents = append(u.domainEvents, event.NewUserRegistered(u.id, u.username))
	return u, nil
}

// ReconstructUser rebuilds a User from persisted data (no validation, no events).
func ReconstructUser(id uuid.UUID, username, email, passwordHash string, admin bool, createdAt time.Time) *User {
	return &User{
		id:           id,
		username:     username,
		email:        email,
		passwordHash: passwordHash,
		admin:        admin,
		createdAt:    createdAt,
	}
}

// ID returns the user ID.
func (u *User) ID() uuid.UUID {
	return u.id
}

// Username returns the login name.
func (u *User) Username() string {
	return u.username
}

// Email returns the contact email.
func (u *User) Email() string {
	return u.email
}

// PasswordHash returns the stored bcrypt hash.
func (u *User) PasswordHash() string {
	return u.passwordHash
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u.admin
}

// CreatedAt returns the account creation time.
func (u *User) CreatedAt() time.Time {
	return u.createdAt
}

// PromoteToAdmin grants the admin role.
func (u *User) PromoteToAdmin() {
	u.admin = true
}

// ChangeEmail validates and updates the contact email.
func (u *User) ChangeEmail(email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRe.MatchString(email) {
		return &valueobject.ValidationError{Field: "email", Reason: "invalid email address"}
	}
	u.email = email
	return nil
}

// ChangePasswordHash swaps in a new password hash.
func (u *User) ChangePasswordHash(hash string) error {
	if hash == "" {
		return &valueobject.ValidationError{Field: "password", Reason: "password hash is required"}
	}
	u.passwordHash = hash
	return nil
}

// DomainEvents returns all accumulated domain events and clears them.
func (u *User) DomainEvents() []event.DomainEvent {
	events := u.domainEvents
	u.domainEvents = nil
	return events
}
