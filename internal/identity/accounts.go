package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

var (
	ErrInvalidEmail = errors.New("please provide a valid email address")
	ErrWeakPassword = fmt.Errorf(
		"password must be at least %d characters long",
		minPasswordLength,
	)
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrUserNotFound       = errors.New("user not found")
)

// Account is a stored user with its password hash.
type Account struct {
	User
	CreatedAt    time.Time `json:"created_at"`
	PasswordHash []byte    `json:"password_hash"`
}

// AccountStore persists accounts and the signed-in user across runs.
type AccountStore interface {
	// CreateAccount stores a new account and returns it with an assigned ID.
	// ErrUserExists is returned if the email is taken.
	CreateAccount(ctx context.Context, acct Account) (*Account, error)
	// AccountByEmail returns ErrUserNotFound if there is no such account.
	AccountByEmail(ctx context.Context, email string) (*Account, error)
	// SaveSignedIn persists the signed-in user. A nil user clears it.
	SaveSignedIn(ctx context.Context, u *User) error
	// SignedIn returns the persisted signed-in user, or nil.
	SignedIn(ctx context.Context) (*User, error)
}

// Service signs users up, in and out, keeping a Context in sync with the
// persisted state.
type Service struct {
	store   AccountStore
	current *Context
	cost    int
}

// NewService returns a Service backed by store that updates current.
func NewService(store AccountStore, current *Context) *Service {
	return &Service{
		store:   store,
		current: current,
		cost:    bcrypt.DefaultCost,
	}
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validate(email, password string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || strings.ContainsAny(email, " \t") {
		return ErrInvalidEmail
	}

	if len(password) < minPasswordLength {
		return ErrWeakPassword
	}

	return nil
}

// SignUp creates an account and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*User, error) {
	email = normaliseEmail(email)

	if err := validate(email, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	acct, err := s.store.CreateAccount(ctx, Account{
		User:         User{Email: email},
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		return nil, err
	}

	return s.signIn(ctx, acct.User)
}

// SignIn verifies the credentials and makes the account current.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	acct, err := s.store.AccountByEmail(ctx, normaliseEmail(email))
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}

	if err != nil {
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(ctx, acct.User)
}

func (s *Service) signIn(ctx context.Context, u User) (*User, error) {
	if err := s.store.SaveSignedIn(ctx, &u); err != nil {
		return nil, fmt.Errorf("saving sign-in: %w", err)
	}

	s.current.SignIn(u)

	return &u, nil
}

// SignOut forgets the signed-in user.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.store.SaveSignedIn(ctx, nil); err != nil {
		return fmt.Errorf("clearing sign-in: %w", err)
	}

	s.current.SignOut()

	return nil
}

// Restore loads the user persisted by a previous sign-in into the context.
func (s *Service) Restore(ctx context.Context) (*User, error) {
	u, err := s.store.SignedIn(ctx)
	if err != nil {
		return nil, err
	}

	if u == nil {
		s.current.SignOut()
		return nil, nil
	}

	s.current.SignIn(*u)

	return u, nil
}
