package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) domainRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/domains", auth)
	{
		g.Post("/", rt.createDomain)
		g.Get("/", rt.listDomains)
		g.Get("/:domainId", rt.getDomain)
		g.Put("/:domainId", rt.updateDomain)
		g.Delete("/:domainId", rt.deleteDomain)
	}
}

func (rt *Router) createDomain(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.CreateDomainReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	domain, err := rt.Services.Domain.CreateDomain(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, domain)
	return nil
}

func (rt *Router) listDomains(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	pageNum, pageSize := pagination(c)

	domains, total, err := rt.Services.Domain.ListDomains(pageNum, pageSize, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, fiber.Map{"list": domains, "total": total})
	return nil
}

func (rt *Router) getDomain(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	domain, err := rt.Services.Domain.GetDomain(c.Params("domainId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, domain)
	return nil
}

func (rt *Router) updateDomain(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.UpdateDomainReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Domain.UpdateDomain(c.Params("domainId"), &req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) deleteDomain(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	if err := rt.Services.Domain.DeleteDomain(c.Params("domainId"), auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}
