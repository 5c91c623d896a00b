package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/consts"
	"github.com/go-warden/warden/internal/engine/model"
	httpx "github.com/go-warden/warden/pkg/http"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) authRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/auth")
	{
		g.Post("/register", rt.register)              // POST /auth/register?from=<domainId>
		g.Post("/login", rt.login)                    // POST /auth/login?from=<domainId>
		g.Post("/connect/:domainId", auth, rt.connect) // POST /auth/connect/:domainId - switch domain
		g.Post("/logout", auth, rt.logout)
	}
}

// authFrom pulls the snapshot set by the authorization middleware. On
// failure the error envelope is already written.
func authFrom(c *fiber.Ctx) (*jwt.Auth, bool) {
	auth, ok := middleware.AuthFromCtx(c)
	if !ok {
		_ = httpx.WithRepErrMsg(c, httpx.Unauthorized.Code, httpx.Unauthorized.Msg, c.Path())
		return nil, false
	}
	return auth, true
}

func (rt *Router) register(c *fiber.Ctx) error {
	var req model.RegisterReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	rep, err := rt.Services.User.Register(&req, c.Query(consts.FromQueryKey))
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, rep)
	return nil
}

func (rt *Router) login(c *fiber.Ctx) error {
	var req model.LoginReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	rep, err := rt.Services.User.Login(&req, c.Query(consts.FromQueryKey))
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, rep)
	return nil
}

// connect re-issues the session against another domain.
func (rt *Router) connect(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	rep, err := rt.Services.User.Connect(c.Params("domainId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, rep)
	return nil
}

func (rt *Router) logout(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	if err := rt.Services.User.Logout(auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}
