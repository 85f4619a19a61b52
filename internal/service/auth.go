package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"clippie/media-api/internal/model"
	"clippie/media-api/internal/store"
	"clippie/media-api/pkg/security"
	"clippie/media-api/validators"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const suffixCharset = "0123456789abcdefghijklmnopqrstuvwxyz"

// UserStore is what the auth service needs from the identity store
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.User, error)
	Insert(ctx context.Context, u *model.User) error
}

// ExternalProfile is the provider-verified identity handed over by the
// OAuth layer. Provider token exchange happens outside this service
type ExternalProfile struct {
	Provider string `json:"provider"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	ImageURL string `json:"image"`
}

type Auth struct {
	Users    UserStore
	Argon    *security.ArgonHash
	Sessions *security.Sessions
}

func NewAuth(users UserStore, argon *security.ArgonHash, sessions *security.Sessions) *Auth {
	return &Auth{Users: users, Argon: argon, Sessions: sessions}
}

// NormalizeEmail lowercases and trims an address so lookups and the
// unique index agree on one spelling
func NormalizeEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Register creates a credentials-backed account. The password is
// hashed exactly once, right here
func (a *Auth) Register(ctx context.Context, username, email, password string) error {
	email = NormalizeEmail(email)

	if err := validators.EmailValidator(email); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := validators.PasswordValidator(password); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	if err := validators.UsernameValidator(username); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err)
	}

	existing, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if existing != nil {
		return ErrConflict
	}

	hash, err := a.Argon.Hash(password)
	if err != nil {
		return err
	}

	err = a.Users.Insert(ctx, &model.User{
		Email:           email,
		Username:        username,
		PasswordHash:    hash,
		Role:            model.RoleUser,
		ProfileComplete: true,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return ErrConflict
	}

	return err
}

// Login checks the credentials and hands back the caller's identity
// together with a fresh session token
func (a *Auth) Login(ctx context.Context, email, password string) (*model.Identity, string, error) {
	email = NormalizeEmail(email)

	if email == "" || password == "" {
		return nil, "", ErrInvalidCredentials
	}

	user, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if user == nil || user.PasswordHash == "" {
		return nil, "", ErrInvalidCredentials
	}

	ok, err := a.Argon.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, "", err
	}

	if !ok {
		return nil, "", ErrInvalidCredentials
	}

	return a.issue(user)
}

// ProvisionExternal resolves a provider-verified profile to a local
// account, creating one on first sign-in. Existing accounts are never
// overwritten, a username collision gets a random suffix instead
func (a *Auth) ProvisionExternal(ctx context.Context, p ExternalProfile) (*model.Identity, string, error) {
	email := NormalizeEmail(p.Email)

	if err := validators.EmailValidator(email); err != nil {
		return nil, "", fmt.Errorf("%w: %s", ErrValidation, err)
	}

	user, err := a.Users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}

	if user != nil {
		return a.issue(user)
	}

	base := deriveUsername(p.Name, email)

	username := base
	for attempt := 0; attempt < 4; attempt++ {
		user = &model.User{
			Email:           email,
			Username:        username,
			Provider:        p.Provider,
			ImageURL:        p.ImageURL,
			Role:            model.RoleUser,
			ProfileComplete: false,
		}

		err = a.Users.Insert(ctx, user)
		if err == nil {
			return a.issue(user)
		}

		if !errors.Is(err, store.ErrDuplicate) {
			return nil, "", err
		}

		// Someone may have grabbed the email in the meantime, in which
		// case this sign-in resolves to that account
		existing, ferr := a.Users.FindByEmail(ctx, email)
		if ferr != nil {
			return nil, "", ferr
		}

		if existing != nil {
			return a.issue(existing)
		}

		suffix, gerr := gonanoid.Generate(suffixCharset, 6)
		if gerr != nil {
			return nil, "", gerr
		}

		username = base + "-" + suffix
	}

	return nil, "", fmt.Errorf("could not provision a unique username for %s", email)
}

func (a *Auth) issue(u *model.User) (*model.Identity, string, error) {
	ident := &model.Identity{
		ID:       u.ID.Hex(),
		Username: u.Username,
		Email:    u.Email,
	}

	token, err := a.Sessions.Issue(*ident)
	if err != nil {
		return nil, "", err
	}

	return ident, token, nil
}

// deriveUsername picks the provider display name, then the email
// local-part, then a time-derived fallback
func deriveUsername(name, email string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", ".")

	if validators.UsernameValidator(name) == nil {
		return name
	}

	if at := strings.Index(email, "@"); at >= 3 {
		local := email[:at]
		if validators.UsernameValidator(local) == nil {
			return local
		}
	}

	return "user" + strconv.FormatInt(time.Now().Unix(), 10)
}
