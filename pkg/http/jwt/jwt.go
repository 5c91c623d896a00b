package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Auth is the denormalized authorization snapshot carried inside a session
// token. It is assembled once at login/connect time; role or org changes made
// afterwards only take effect on the next issued token.
type Auth struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	DomainID  string   `json:"domainId,omitempty"` // empty for system admins and pre-domain contexts
	OrgIDs    []string `json:"orgIds"`
	RoleIDs   []string `json:"roleIds"`
	RoleLevel int      `json:"roleLevel"` // lowest (most privileged) level among held roles
	IsAdmin   bool     `json:"isAdmin"`   // sys_role == "admin"
}

// DefaultRoleLevel is the level assumed when a principal holds no role
// in the current domain.
const DefaultRoleLevel = 999

type AuthClaims struct {
	Auth Auth `json:"auth"`
	jwt.RegisteredClaims
}

var (
	issUser = "warden"

	ErrTokenExpired   = jwt.ErrTokenExpired
	ErrTokenMalformed = errors.New("token is malformed")
)

// GenToken signs a session token embedding the auth snapshot.
func GenToken(auth Auth, secretKey []byte, expire time.Duration) (string, error) {
	return GenTokenAt(auth, secretKey, expire, time.Now())
}

// GenTokenAt is GenToken with an explicit clock, for tests.
// iat and exp are truncated to whole seconds for a stable wire format.
func GenTokenAt(auth Auth, secretKey []byte, expire time.Duration, now time.Time) (string, error) {
	iat := now.Truncate(time.Second)
	claims := &AuthClaims{
		Auth: auth,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issUser,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(iat.Add(expire).Truncate(time.Second)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		return "", err
	}
	return token, nil
}

// ParseToken verifies signature and expiry and returns the embedded snapshot.
func ParseToken(aToken, secretKey string) (*Auth, error) {
	claims := new(AuthClaims)
	token, err := jwt.ParseWithClaims(aToken, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}
	if !token.Valid {
		return nil, ErrTokenMalformed
	}
	return &claims.Auth, nil
}
