// Package auth implements login for the site's small API: a single configured
// account checked with bcrypt, and signed, time-limited JWTs.
package auth

import (
	"strings"

	"github.com/hpungsan/blogdex/internal/errors"
)

// Account is the single login the API accepts.
type Account struct {
	ID           int
	Username     string
	PasswordHash string // bcrypt
}

// Authenticator checks credentials against the configured account and issues tokens.
type Authenticator struct {
	account *Account
	issuer  *Issuer
}

// NewAuthenticator creates an Authenticator. A nil account rejects every login.
func NewAuthenticator(account *Account, issuer *Issuer) *Authenticator {
	return &Authenticator{account: account, issuer: issuer}
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// Login validates credentials and returns a signed token.
func (a *Authenticator) Login(username, password string) (*LoginOutput, error) {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil, errors.NewInvalidRequest("username and password required")
	}

	if a.account == nil || a.account.Username != username {
		return nil, errors.NewUnauthorized("invalid credentials")
	}
	if !CheckPassword(password, a.account.PasswordHash) {
		return nil, errors.NewUnauthorized("invalid credentials")
	}

	user := User{ID: a.account.ID, Username: a.account.Username}
	token, err := a.issuer.Issue(user)
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &LoginOutput{
		Message: "Login successful",
		Token:   token,
		User:    user,
	}, nil
}

// Authenticate resolves an Authorization header value ("Bearer <token>") to a user.
// A missing token is UNAUTHORIZED; a bad or expired one is FORBIDDEN.
func (a *Authenticator) Authenticate(header string) (*User, error) {
	token := bearerToken(header)
	if token == "" {
		return nil, errors.NewUnauthorized("access token required")
	}

	user, err := a.issuer.Verify(token)
	if err != nil {
		return nil, errors.NewForbidden("invalid or expired token")
	}
	return user, nil
}

// bearerToken extracts the token from "Bearer <token>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
