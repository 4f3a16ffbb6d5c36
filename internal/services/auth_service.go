package services

import (
	"fmt"
	"log"

	"github.com/dgrijalva/jwt-go"
)

// TokenVerifier validates a bearer token issued by the external identity
// service and extracts the verified principal email. Implementations must
// treat every verification failure (malformed, expired, bad signature) the
// same way: the caller only learns that the credential is invalid.
type TokenVerifier interface {
	VerifyIDToken(token string) (string, error)
}

// JWTVerifier is a TokenVerifier over HS256-signed JWTs carrying the
// principal email in the "email" claim.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a new JWTVerifier with the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// VerifyIDToken parses and validates a token and returns the email claim.
func (v *JWTVerifier) VerifyIDToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Validate the alg is what we expect:
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return "", fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", fmt.Errorf("%w: token has no email claim", ErrUnauthorized)
	}
	return email, nil
}

// AuthorizeSelf checks that the identity claimed in a path or body parameter
// matches the verified principal. Authentication answers who the caller is;
// this answers whether they may act on the claimed identity's resources.
func AuthorizeSelf(principalEmail, claimedEmail string) error {
	if principalEmail == "" || principalEmail != claimedEmail {
		return fmt.Errorf("%w: principal does not match claimed identity", ErrForbidden)
	}
	return nil
}

// AuthorizeRole checks that a role satisfies the required one.
func AuthorizeRole(role, required string) error {
	if role != required {
		return fmt.Errorf("%w: role %q is required", ErrForbidden, required)
	}
	return nil
}

// Policy holds the privilege-boundary switches. The defaults mirror the
// historical behavior, where any authenticated user may change roles and
// mutate any contest; tightening either is an explicit deployment decision.
type Policy struct {
	// RestrictRoleChanges requires an admin principal for role updates.
	RestrictRoleChanges bool
	// EnforceContestOwnership requires the owning creator for winner
	// marking, metadata updates, and deletion.
	EnforceContestOwnership bool
}
