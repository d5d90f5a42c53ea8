package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrUnknownKey   = errors.New("signing key not found in jwks")
)

// Claims are the verified identity claims the rest of the service consumes.
type Claims struct {
	jwt.RegisteredClaims
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	AvatarURL string `json:"image_url"`
}

// Verifier validates Clerk-issued RS256 tokens against the issuer's JWKS.
// The key set is cached process-wide; an unknown kid forces one refetch
// before the token is rejected.
type Verifier struct {
	issuer  string
	jwksURL string
	http    *http.Client

	mu   sync.RWMutex
	keys map[string]*rsa.PublicKey
}

func NewVerifier(issuer string) *Verifier {
	jwksURL := strings.TrimSuffix(issuer, "/") + "/.well-known/jwks.json"
	return &Verifier{
		issuer:  issuer,
		jwksURL: jwksURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (v *Verifier) Verify(ctx context.Context, tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, ErrInvalidToken
		}
		return v.keyForKid(ctx, kid)
	},
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (v *Verifier) keyForKid(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	v.mu.RLock()
	key, ok := v.keys[kid]
	v.mu.RUnlock()
	if ok {
		return key, nil
	}

	// Cache miss: the issuer may have rotated keys. Refetch once.
	keys, err := fetchJWKS(ctx, v.http, v.jwksURL)
	if err != nil {
		return nil, err
	}
	v.mu.Lock()
	v.keys = keys
	key, ok = v.keys[kid]
	v.mu.Unlock()
	if !ok {
		return nil, ErrUnknownKey
	}
	return key, nil
}
