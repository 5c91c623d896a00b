package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) permRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/perms", auth)
	{
		g.Post("/", rt.createPerm)
		g.Get("/", rt.listPerms)
		g.Get("/:permId", rt.getPerm)
		g.Put("/:permId", rt.updatePerm)
		g.Delete("/:permId", rt.deletePerm)
	}
}

func (rt *Router) createPerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.CreatePermReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	perm, err := rt.Services.Perm.CreatePerm(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, perm)
	return nil
}

func (rt *Router) listPerms(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	pageNum, pageSize := pagination(c)

	perms, total, err := rt.Services.Perm.ListPerms(c.Query("domainId"), pageNum, pageSize, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"list": perms, "total": total})
	return nil
}

func (rt *Router) getPerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	perm, err := rt.Services.Perm.GetPerm(c.Params("permId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, perm)
	return nil
}

func (rt *Router) updatePerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.UpdatePermReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Perm.UpdatePerm(c.Params("permId"), &req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) deletePerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	if err := rt.Services.Perm.DeletePerm(c.Params("permId"), auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}
