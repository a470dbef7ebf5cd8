package auth

import (
	"context"
	"regexp"
	"time"

	"github.com/google/uuid"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
	domerrors "github.com/tmarcinkow/bookmarkd/internal/domain/errors"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type SignupInput struct {
	Email    string
	Password string
}

type SignupResult struct {
	User        *domain.User
	AccessToken string
}

// Signup hashes the password, stores the user, and issues an access token.
type Signup struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignup(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signup {
	return &Signup{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Signup) Execute(ctx context.Context, input SignupInput) (*SignupResult, error) {
	if input.Password == "" || !emailRegex.MatchString(input.Email) {
		return nil, domerrors.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &domain.User{
		ID:           domain.NewUserID(uuid.New()),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// The unique index on email is the source of truth; a concurrent signup
	// with the same address surfaces here as ErrDuplicateEmail.
	if err := uc.users.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	return &SignupResult{User: user, AccessToken: token}, nil
}
