// Package authz holds the central authorization decision logic.
//
// Decisions are pure functions over the caller's token snapshot and the
// already-resolved target entity. Rules apply in a fixed order: the
// system-admin override, then domain presence, then domain scope, then
// the numeric privilege-level comparison (lower level = more senior).
package authz

import (
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/jwt"
)

// CanAdminister allows only the system-admin override.
func CanAdminister(auth *jwt.Auth) error {
	if auth.IsAdmin {
		return nil
	}
	return errs.ErrAdminOnly
}

// CanActInDomain gates mutations on domain-scoped entities that carry no
// level of their own (the domain itself, permissions, organizations).
// The caller must be inside the target domain and hold admin-grade
// privilege there.
func CanActInDomain(auth *jwt.Auth, domainId string) error {
	if auth.IsAdmin {
		return nil
	}
	if auth.DomainID == "" {
		return errs.ErrMissingDomain
	}
	if auth.DomainID != domainId {
		return errs.ErrOutOfDomain
	}
	if auth.RoleLevel > model.AdminRoleLevel {
		return errs.ErrInsufficientLevel
	}
	return nil
}

// CanActOnRole gates operations naming a specific role, such as grant,
// revoke, update and delete. A principal may only act on roles whose
// level is not more privileged than its own: a level-1 admin reaches
// level-2 and below, never another level-1 role.
func CanActOnRole(auth *jwt.Auth, role *model.Role) error {
	if auth.IsAdmin {
		return nil
	}
	if auth.DomainID == "" {
		return errs.ErrMissingDomain
	}
	if auth.DomainID != role.DomainId {
		return errs.ErrOutOfDomain
	}
	if auth.RoleLevel > role.Level {
		return errs.ErrInsufficientLevel
	}
	return nil
}

// CanActOnLevel gates create operations that implicitly target a level
// before any role row exists.
func CanActOnLevel(auth *jwt.Auth, domainId string, level int) error {
	if auth.IsAdmin {
		return nil
	}
	if auth.DomainID == "" {
		return errs.ErrMissingDomain
	}
	if auth.DomainID != domainId {
		return errs.ErrOutOfDomain
	}
	if auth.RoleLevel > level {
		return errs.ErrInsufficientLevel
	}
	return nil
}

// CanReadDomain gates sensitive reads inside a domain. Membership is
// enough, no level requirement.
func CanReadDomain(auth *jwt.Auth, domainId string) error {
	if auth.IsAdmin {
		return nil
	}
	if auth.DomainID == "" {
		return errs.ErrMissingDomain
	}
	if auth.DomainID != domainId {
		return errs.ErrOutOfDomain
	}
	return nil
}

// HoldsRole reports whether the snapshot carries the given role id.
func HoldsRole(auth *jwt.Auth, roleId string) bool {
	for _, id := range auth.RoleIDs {
		if id == roleId {
			return true
		}
	}
	return false
}
