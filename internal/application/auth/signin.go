package auth

import (
	"context"

	"github.com/tmarcinkow/bookmarkd/internal/application/ports"
	"github.com/tmarcinkow/bookmarkd/internal/domain"
	domerrors "github.com/tmarcinkow/bookmarkd/internal/domain/errors"
)

type SigninInput struct {
	Email    string
	Password string
}

type SigninResult struct {
	User        *domain.User
	AccessToken string
}

// Signin verifies credentials and issues an access token. Unknown email and
// wrong password both fail with the same error value.
type Signin struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

func NewSignin(users ports.UserRepository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Signin {
	return &Signin{users: users, hasher: hasher, issuer: issuer}
}

func (uc *Signin) Execute(ctx context.Context, input SigninInput) (*SigninResult, error) {
	user, err := uc.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !uc.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domerrors.ErrInvalidCredentials
	}
	token, err := uc.issuer.IssueAccessToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}
	return &SigninResult{User: user, AccessToken: token}, nil
}
