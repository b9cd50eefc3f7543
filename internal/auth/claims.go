package auth

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/hance08/findash/internal/model"
)

// IdentityFromToken reads profile claims without verifying the signature.
func IdentityFromToken(raw string) (model.Identity, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return model.Identity{}, fmt.Errorf("token is empty")
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return model.Identity{}, fmt.Errorf("failed to parse token claims: %w", err)
	}

	return model.Identity{
		ID:    firstClaim(claims, "oid", "sub"),
		Name:  firstClaim(claims, "name", "given_name"),
		Email: firstClaim(claims, "preferred_username", "email", "upn"),
	}, nil
}

func firstClaim(claims jwt.MapClaims, names ...string) string {
	for _, name := range names {
		if v, ok := claims[name].(string); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
