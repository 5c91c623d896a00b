package router

import (
	"fmt"
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	httpx "github.com/go-warden/warden/pkg/http"
	"github.com/go-warden/warden/pkg/http/middleware"
	"github.com/go-warden/warden/pkg/id"
)

func (rt *Router) userRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/user", auth)
	{
		g.Get("/me", rt.me)
		g.Put("/me", rt.updateMe)
		g.Put("/password", rt.changePassword)
		g.Post("/password/reset", rt.resetPassword)
		g.Post("/avatar", rt.uploadAvatar)
		g.Get("/", rt.listUsers)
		g.Get("/:userId", rt.getUser)
	}
}

func (rt *Router) listUsers(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	pageNum, pageSize := pagination(c)

	users, total, err := rt.Services.User.ListUsers(pageNum, pageSize, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"list": users, "total": total})
	return nil
}

func (rt *Router) getUser(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	user, err := rt.Services.User.GetUser(c.Params("userId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, user)
	return nil
}

func (rt *Router) me(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	user, err := rt.Services.User.Me(auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, user)
	return nil
}

func (rt *Router) updateMe(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.UpdateUserReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.User.UpdateUser(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) changePassword(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.ChangePasswordReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.User.ChangePassword(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

// resetPassword sets a generated password on another account. The clear
// value is returned once in the response and never stored.
func (rt *Router) resetPassword(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.ResetPasswordReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	generated, err := rt.Services.User.ResetPassword(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"password": generated})
	return nil
}

func (rt *Router) uploadAvatar(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	file, err := c.FormFile("avatar")
	if err != nil {
		return httpx.WithRepErrMsg(c, httpx.BadRequest.Code, "avatar file is required", c.Path())
	}

	client, err := rt.Minio.Client()
	if err != nil {
		return rt.repErr(c, err)
	}
	objectName := fmt.Sprintf("avatar/%s/%s%s", auth.ID, id.GetUUIDWithoutDashes(), filepath.Ext(file.Filename))
	contentType := file.Header.Get(fiber.HeaderContentType)
	if _, err = rt.Minio.Upload(c.Context(), client, objectName, file, contentType); err != nil {
		return rt.repErr(c, err)
	}

	if err = rt.Services.User.SetAvatar(auth.ID, objectName); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"avatar": objectName})
	return nil
}
