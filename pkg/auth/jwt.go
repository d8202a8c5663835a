package auth

import (
	"errors"
	"fmt"
	"time"

	"pawbook/pkg/lifecycle"
	"pawbook/pkg/model"

	jwt "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrMissingShop  = errors.New("staff token missing shop_id claim")
)

// Claims is the session token payload issued by the identity provider:
// sub carries the user id, role the single request role, shop_id the shop
// the holder is staff of (absent for customers).
type Claims struct {
	Role   string `json:"role"`
	ShopID string `json:"shop_id,omitempty"`
	jwt.RegisteredClaims
}

// NewToken mints an HS256 access token. Used by tests and local tooling;
// production tokens come from the identity provider.
func NewToken(secret, userID string, role lifecycle.Role, shopID string, ttl time.Duration) (string, error) {
	claims := Claims{
		Role:   string(role),
		ShopID: shopID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse validates the token and maps its claims onto an Actor. Staff roles
// must carry a shop_id; customers must not act as staff of any shop.
func Parse(secret, tokenStr string) (model.Actor, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return model.Actor{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Actor{}, ErrInvalidToken
	}
	if claims.Subject == "" {
		return model.Actor{}, ErrInvalidToken
	}

	role, err := lifecycle.ParseRole(claims.Role)
	if err != nil {
		return model.Actor{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if role != lifecycle.RoleCustomer && claims.ShopID == "" {
		return model.Actor{}, ErrMissingShop
	}

	return model.Actor{
		UserID: claims.Subject,
		Role:   role,
		ShopID: claims.ShopID,
	}, nil
}
