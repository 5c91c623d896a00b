package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) roleRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/roles", auth)
	{
		g.Post("/", rt.createRole)
		g.Get("/", rt.listRoles) // ?domainId=&pageNum=&pageSize=
		g.Get("/:roleId", rt.getRole)
		g.Put("/:roleId", rt.updateRole)
		g.Delete("/:roleId", rt.deleteRole)
		g.Get("/:roleId/perms", rt.listRolePerms)
		g.Get("/:roleId/users", rt.listRoleUsers)
	}
}

func (rt *Router) createRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.CreateRoleReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	role, err := rt.Services.Role.CreateRole(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, role)
	return nil
}

func (rt *Router) listRoles(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	pageNum, pageSize := pagination(c)

	roles, total, err := rt.Services.Role.ListRoles(c.Query("domainId"), pageNum, pageSize, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"list": roles, "total": total})
	return nil
}

func (rt *Router) getRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	role, err := rt.Services.Role.GetRole(c.Params("roleId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, role)
	return nil
}

func (rt *Router) updateRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.UpdateRoleReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Role.UpdateRole(c.Params("roleId"), &req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) deleteRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	if err := rt.Services.Role.DeleteRole(c.Params("roleId"), auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) listRolePerms(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	perms, err := rt.Services.Rbac.ListRolePerms(c.Params("roleId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, perms)
	return nil
}

func (rt *Router) listRoleUsers(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	users, err := rt.Services.Rbac.ListRoleUsers(c.Params("roleId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, users)
	return nil
}
