package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// Identity is the already-verified output of token verification. The
// rest of the system treats it as an opaque capability and never
// re-derives trust from the raw credential.
type Identity struct {
	Subject string
	Role    string
}

var ErrInvalidToken = errors.New("invalid token")

type Verifier interface {
	Verify(token string) (Identity, error)
}

// JWTVerifier checks HMAC-signed bearer tokens. Claims: "sub" carries
// the identity, "role" the marketplace role.
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(tokenString string) (Identity, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, ErrInvalidToken
	}

	subject, _ := claims["sub"].(string)
	if subject == "" {
		return Identity{}, ErrInvalidToken
	}

	role, _ := claims["role"].(string)
	if role == "" {
		role = RoleUser
	}

	return Identity{Subject: subject, Role: role}, nil
}
