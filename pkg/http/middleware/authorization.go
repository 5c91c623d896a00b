package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/go-warden/warden/internal/engine/consts"
	"github.com/go-warden/warden/pkg/cache"
	"github.com/go-warden/warden/pkg/http"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/log"
	"github.com/gofiber/fiber/v2"
)

// AuthorizationMiddleware verifies the bearer token, checks that the session
// is still live in redis, and exposes the decoded snapshot via locals.
// This function is used as the middleware of fiber.
func AuthorizationMiddleware(secretKey string, rc cache.ICache) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrMsg(c, http.TokenFormatIncorrect.Code, http.TokenFormatIncorrect.Msg, c.Path())
		}

		auth, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		// a token revoked at logout no longer exists in redis
		tokenKey := consts.UserTokenKey + auth.ID
		exists, err := rc.Exists(context.Background(), tokenKey)
		if err != nil {
			log.Errorf("redis check token exists failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if !exists {
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		ttl, err := rc.TTL(context.Background(), tokenKey)
		if err != nil {
			log.Errorf("redis check token TTL failed: %v", err)
			return http.WithRepErrMsg(c, http.InternalError.Code, http.InternalError.Msg, c.Path())
		}
		if ttl <= 0 {
			log.Warnf("token has expired in redis for user: %s", auth.ID)
			return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
		}

		c.Locals(consts.AUTH, auth)
		return c.Next()
	}
}

// AuthFromCtx returns the snapshot set by AuthorizationMiddleware.
func AuthFromCtx(c *fiber.Ctx) (*jwt.Auth, bool) {
	auth, ok := c.Locals(consts.AUTH).(*jwt.Auth)
	return auth, ok
}
