package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) orgRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/orgs", auth)
	{
		g.Post("/", rt.createOrg)
		g.Get("/", rt.listOrgs)
		g.Get("/:orgId", rt.getOrg)
		g.Put("/:orgId", rt.updateOrg)
		g.Delete("/:orgId", rt.deleteOrg)
		g.Get("/:orgId/users", rt.listOrgUsers)
	}
}

func (rt *Router) createOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.CreateOrgReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	org, err := rt.Services.Org.CreateOrg(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, org)
	return nil
}

func (rt *Router) listOrgs(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	pageNum, pageSize := pagination(c)

	orgs, total, err := rt.Services.Org.ListOrgs(c.Query("domainId"), pageNum, pageSize, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"list": orgs, "total": total})
	return nil
}

func (rt *Router) getOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	org, err := rt.Services.Org.GetOrg(c.Params("orgId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, org)
	return nil
}

func (rt *Router) updateOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.UpdateOrgReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Org.UpdateOrg(c.Params("orgId"), &req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) deleteOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	if err := rt.Services.Org.DeleteOrg(c.Params("orgId"), auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) listOrgUsers(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	users, err := rt.Services.Rbac.ListOrgUsers(c.Params("orgId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, users)
	return nil
}
