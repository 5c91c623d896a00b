package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/middleware"
)

func (rt *Router) rbacRouter(r fiber.Router, auth fiber.Handler) {
	g := r.Group("/rbac", auth)
	{
		g.Post("/role/grant", rt.grantRole)
		g.Post("/role/revoke", rt.revokeRole)
		g.Post("/role/change", rt.changeRoles)
		g.Post("/role/extend", rt.extendRoleExpire)
		g.Post("/org/join", rt.joinOrg)
		g.Post("/org/joins", rt.joinOrgs)
		g.Post("/org/leave", rt.leaveOrg)
		g.Post("/org/extend", rt.extendOrgExpire)
		g.Post("/perm/grant", rt.grantPerm)
		g.Post("/perm/revoke", rt.revokePerm)
		g.Post("/access", rt.access)
		g.Get("/user/:userId/roles", rt.listUserRoles)
		g.Get("/user/:userId/orgs", rt.listUserOrgs)
		g.Get("/user/:userId/domains", rt.listUserDomains)
	}
}

func (rt *Router) grantRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.GrantRoleReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.GrantRole(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) revokeRole(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.GrantRoleReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.RevokeRole(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

// changeRoles replaces the user's role set within one domain atomically.
func (rt *Router) changeRoles(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.ChangeRolesReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.ChangeRoles(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) extendRoleExpire(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.ExtendExpireReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.ExtendRoleExpire(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) joinOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.JoinOrgReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.JoinOrg(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) joinOrgs(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.JoinOrgsReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.JoinOrgs(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) leaveOrg(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.JoinOrgReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.LeaveOrg(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) extendOrgExpire(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.ExtendOrgExpireReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.ExtendOrgExpire(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) grantPerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.GrantPermReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.GrantPerm(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

func (rt *Router) revokePerm(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.GrantPermReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	if err := rt.Services.Rbac.RevokePerm(&req, auth); err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.OPERATION, true)
	return nil
}

// access answers, per permission, whether the caller both holds the
// permission through the role and currently wears that role.
func (rt *Router) access(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}
	var req model.AccessReq
	if !parseAndValidate(c, &req) {
		return nil
	}

	result, err := rt.Services.Rbac.Access(&req, auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, result)
	return nil
}

func (rt *Router) listUserRoles(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	roles, err := rt.Services.Rbac.ListUserRoles(c.Params("userId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, roles)
	return nil
}

func (rt *Router) listUserOrgs(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	orgs, err := rt.Services.Rbac.ListUserOrgs(c.Params("userId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, orgs)
	return nil
}

func (rt *Router) listUserDomains(c *fiber.Ctx) error {
	auth, ok := authFrom(c)
	if !ok {
		return nil
	}

	domains, err := rt.Services.Rbac.ListUserDomains(c.Params("userId"), auth)
	if err != nil {
		return rt.repErr(c, err)
	}
	c.Locals(middleware.DETAIL, domains)
	return nil
}
