package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vishalsx/tubstudio-sub001/internal/domain"
	"github.com/vishalsx/tubstudio-sub001/internal/usecase/permissions"
)

// Claims is what the auth collaborator signs into the bearer token. The
// session engine never issues tokens, it only reads them.
type Claims struct {
	Username         string   `json:"username"`
	Roles            []string `json:"roles"`
	Permissions      []string `json:"permissions"`
	LanguagesAllowed []string `json:"languages_allowed"`
	jwt.RegisteredClaims
}

type JWTService struct {
	secret []byte
}

func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Parse validates token and builds the immutable per-session UserContext.
// Permission rules come from the stock table; the token only carries grants.
func (s *JWTService) Parse(token string) (*domain.UserContext, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return &domain.UserContext{
		AccessToken:      token,
		Username:         claims.Username,
		Roles:            claims.Roles,
		Permissions:      claims.Permissions,
		LanguagesAllowed: claims.LanguagesAllowed,
		PermissionRules:  permissions.DefaultRules(),
	}, nil
}
