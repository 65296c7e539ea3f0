// README: HS256 bearer verifier for local development without Firebase credentials.
package infra

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

type devClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type devVerifier struct {
	secret []byte
}

// NewDevVerifier returns a TokenVerifier that accepts HS256 tokens signed with
// the given secret. The token subject becomes the caller UID.
func NewDevVerifier(secret string) TokenVerifier {
	return &devVerifier{secret: []byte(secret)}
}

func (v *devVerifier) VerifyIDToken(_ context.Context, idToken string) (*Token, error) {
	token, err := jwt.ParseWithClaims(idToken, &devClaims{}, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*devClaims)
	if !ok || claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return &Token{
		UID:    claims.Subject,
		Email:  claims.Email,
		Claims: map[string]interface{}{"email": claims.Email},
	}, nil
}
