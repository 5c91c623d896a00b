package service

import (
	"errors"
	"time"

	"github.com/go-warden/warden/internal/engine/authz"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/log"
)

// RbacService owns the association workflows: role grants, organization
// membership and role-permission attachments. Every mutation authorizes
// first, then runs the existence guards, then writes.
type RbacService struct {
	domainRepo   repo.IDomainRepository
	roleRepo     repo.IRoleRepository
	permRepo     repo.IPermRepository
	orgRepo      repo.IOrgRepository
	userRepo     repo.IUserRepository
	userRoleRepo repo.IUserRoleRepository
	userOrgRepo  repo.IUserOrgRepository
	rolePermRepo repo.IRolePermRepository
	tx           repo.Tx
}

func NewRbacService(repos *repo.Repositories, tx repo.Tx) *RbacService {
	return &RbacService{
		domainRepo:   repos.Domain,
		roleRepo:     repos.Role,
		permRepo:     repos.Perm,
		orgRepo:      repos.Org,
		userRepo:     repos.User,
		userRoleRepo: repos.UserRole,
		userOrgRepo:  repos.UserOrg,
		rolePermRepo: repos.RolePerm,
		tx:           tx,
	}
}

// GrantRole gives userId the role for the default 30-day window.
func (s *RbacService) GrantRole(req *model.GrantRoleReq, auth *jwt.Auth) error {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}
	if _, err := s.userRepo.GetUser(req.UserId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUserNotExist
		}
		return err
	}

	if existing, err := s.userRoleRepo.GetUserRole(req.UserId, req.RoleId); err == nil {
		if existing.Expire.After(time.Now()) {
			return errs.ErrAlreadyGranted
		}
		// lapsed row the sweeper has not purged yet, refresh its window
		if err := s.userRoleRepo.UpdateExpire(req.UserId, req.RoleId, time.Now().Add(model.GrantExpire)); err != nil {
			return err
		}
		log.Infow("lapsed role grant refreshed", "userId", req.UserId, "roleId", req.RoleId)
		return nil
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	row := &model.UserRole{
		UserId:    req.UserId,
		RoleId:    req.RoleId,
		RoleLevel: role.Level,
		Expire:    time.Now().Add(model.GrantExpire),
	}
	if err := s.userRoleRepo.CreateUserRole(row); err != nil {
		log.Errorw("failed to grant role", "userId", req.UserId, "roleId", req.RoleId, "error", err)
		return err
	}
	log.Infow("role granted", "userId", req.UserId, "roleId", req.RoleId)
	return nil
}

// RevokeRole removes an existing grant.
func (s *RbacService) RevokeRole(req *model.GrantRoleReq, auth *jwt.Auth) error {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}

	if _, err := s.userRoleRepo.GetUserRole(req.UserId, req.RoleId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotGranted
		}
		return err
	}

	if err := s.userRoleRepo.DeleteUserRole(req.UserId, req.RoleId); err != nil {
		log.Errorw("failed to revoke role", "userId", req.UserId, "roleId", req.RoleId, "error", err)
		return err
	}
	log.Infow("role revoked", "userId", req.UserId, "roleId", req.RoleId)
	return nil
}

// ChangeRoles replaces every role the user holds within the target
// domain with the new set, atomically. An empty set clears the user's
// roles in the domain.
func (s *RbacService) ChangeRoles(req *model.ChangeRolesReq, auth *jwt.Auth) error {
	newRoles, err := s.roleRepo.GetRolesByRoleIds(req.RoleIds)
	if err != nil {
		return err
	}
	if len(newRoles) != len(req.RoleIds) {
		return errs.ErrNotFound
	}

	domainId := auth.DomainID
	if auth.IsAdmin && len(newRoles) > 0 {
		domainId = newRoles[0].DomainId
	}
	if domainId == "" {
		return errs.ErrMissingDomain
	}
	for i := range newRoles {
		if newRoles[i].DomainId != domainId {
			return errs.ErrOutOfDomain
		}
		if err := authz.CanActOnRole(auth, &newRoles[i]); err != nil {
			return err
		}
	}

	if _, err := s.userRepo.GetUser(req.UserId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUserNotExist
		}
		return err
	}

	// current grants limited to the target domain, the user's roles in
	// other domains are untouched
	current, err := s.userRoleRepo.ListUserRolesByUserId(req.UserId)
	if err != nil {
		return err
	}
	currentIds := make([]string, 0, len(current))
	for _, ur := range current {
		currentIds = append(currentIds, ur.RoleId)
	}
	currentRoles, err := s.roleRepo.GetRolesByRoleIds(currentIds)
	if err != nil {
		return err
	}
	toDelete := make([]string, 0, len(currentRoles))
	for i := range currentRoles {
		if currentRoles[i].DomainId != domainId {
			continue
		}
		// removing a grant is acting on that role, same rule as revoke
		if err := authz.CanActOnRole(auth, &currentRoles[i]); err != nil {
			return err
		}
		toDelete = append(toDelete, currentRoles[i].RoleId)
	}

	expire := time.Now().Add(model.GrantExpire)
	err = s.tx(func(r *repo.Repositories) error {
		if err := r.UserRole.DeleteUserRoles(req.UserId, toDelete); err != nil {
			return err
		}
		for i := range newRoles {
			if err := r.UserRole.CreateUserRole(&model.UserRole{
				UserId:    req.UserId,
				RoleId:    newRoles[i].RoleId,
				RoleLevel: newRoles[i].Level,
				Expire:    expire,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("failed to change roles", "userId", req.UserId, "error", err)
		return errs.Wrap(errs.ErrTransactionFailed, err.Error())
	}
	log.Infow("roles changed", "userId", req.UserId, "domainId", domainId, "count", len(newRoles))
	return nil
}

// ExtendRoleExpire pushes out the expiry of an existing grant without
// touching anything else.
func (s *RbacService) ExtendRoleExpire(req *model.ExtendExpireReq, auth *jwt.Auth) error {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}

	if _, err := s.userRoleRepo.GetUserRole(req.UserId, req.RoleId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotGranted
		}
		return err
	}

	return s.userRoleRepo.UpdateExpire(req.UserId, req.RoleId, req.Expire)
}

// JoinOrg adds the user to an organization.
func (s *RbacService) JoinOrg(req *model.JoinOrgReq, auth *jwt.Auth) error {
	org, err := s.orgRepo.GetOrg(req.OrgId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, org.DomainId); err != nil {
		return err
	}
	if _, err := s.userRepo.GetUser(req.UserId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUserNotExist
		}
		return err
	}

	if _, err := s.userOrgRepo.GetUserOrg(req.UserId, req.OrgId); err == nil {
		return errs.ErrAlreadyGranted
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	row := &model.UserOrg{
		UserId: req.UserId,
		OrgId:  req.OrgId,
		Expire: time.Now().Add(model.GrantExpire),
	}
	if err := s.userOrgRepo.CreateUserOrg(row); err != nil {
		log.Errorw("failed to join org", "userId", req.UserId, "orgId", req.OrgId, "error", err)
		return err
	}
	log.Infow("org joined", "userId", req.UserId, "orgId", req.OrgId)
	return nil
}

// JoinOrgs is the batch variant, all memberships commit or none do.
func (s *RbacService) JoinOrgs(req *model.JoinOrgsReq, auth *jwt.Auth) error {
	if _, err := s.userRepo.GetUser(req.UserId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrUserNotExist
		}
		return err
	}

	orgs, err := s.orgRepo.GetOrgsByOrgIds(req.OrgIds)
	if err != nil {
		return err
	}
	if len(orgs) != len(req.OrgIds) {
		return errs.ErrNotFound
	}
	for i := range orgs {
		if err := authz.CanActInDomain(auth, orgs[i].DomainId); err != nil {
			return err
		}
		if _, err := s.userOrgRepo.GetUserOrg(req.UserId, orgs[i].OrgId); err == nil {
			return errs.ErrAlreadyGranted
		} else if !errors.Is(err, errs.ErrNotFound) {
			return err
		}
	}

	expire := time.Now().Add(model.GrantExpire)
	err = s.tx(func(r *repo.Repositories) error {
		for i := range orgs {
			if err := r.UserOrg.CreateUserOrg(&model.UserOrg{
				UserId: req.UserId,
				OrgId:  orgs[i].OrgId,
				Expire: expire,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Errorw("failed to join orgs", "userId", req.UserId, "error", err)
		return errs.Wrap(errs.ErrTransactionFailed, err.Error())
	}
	return nil
}

// LeaveOrg removes the user from an organization.
func (s *RbacService) LeaveOrg(req *model.JoinOrgReq, auth *jwt.Auth) error {
	org, err := s.orgRepo.GetOrg(req.OrgId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, org.DomainId); err != nil {
		return err
	}

	if _, err := s.userOrgRepo.GetUserOrg(req.UserId, req.OrgId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotGranted
		}
		return err
	}

	if err := s.userOrgRepo.DeleteUserOrg(req.UserId, req.OrgId); err != nil {
		log.Errorw("failed to leave org", "userId", req.UserId, "orgId", req.OrgId, "error", err)
		return err
	}
	log.Infow("org left", "userId", req.UserId, "orgId", req.OrgId)
	return nil
}

// ExtendOrgExpire pushes out the expiry of an existing membership.
func (s *RbacService) ExtendOrgExpire(req *model.ExtendOrgExpireReq, auth *jwt.Auth) error {
	org, err := s.orgRepo.GetOrg(req.OrgId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, org.DomainId); err != nil {
		return err
	}

	if _, err := s.userOrgRepo.GetUserOrg(req.UserId, req.OrgId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotGranted
		}
		return err
	}

	return s.userOrgRepo.UpdateExpire(req.UserId, req.OrgId, req.Expire)
}

// GrantPerm attaches a permission to a role. Both sides must live in
// the same domain.
func (s *RbacService) GrantPerm(req *model.GrantPermReq, auth *jwt.Auth) error {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return err
	}
	perm, err := s.permRepo.GetPerm(req.PermId)
	if err != nil {
		return err
	}
	if role.DomainId != perm.DomainId {
		return errs.ErrOutOfDomain
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}

	if _, err := s.rolePermRepo.GetRolePerm(req.RoleId, req.PermId); err == nil {
		return errs.ErrAlreadyGranted
	} else if !errors.Is(err, errs.ErrNotFound) {
		return err
	}

	if err := s.rolePermRepo.CreateRolePerm(&model.RolePerm{
		RoleId: req.RoleId,
		PermId: req.PermId,
	}); err != nil {
		log.Errorw("failed to grant perm", "roleId", req.RoleId, "permId", req.PermId, "error", err)
		return err
	}
	log.Infow("perm granted", "roleId", req.RoleId, "permId", req.PermId)
	return nil
}

// RevokePerm detaches a permission from a role.
func (s *RbacService) RevokePerm(req *model.GrantPermReq, auth *jwt.Auth) error {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}

	if _, err := s.rolePermRepo.GetRolePerm(req.RoleId, req.PermId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return errs.ErrNotGranted
		}
		return err
	}

	if err := s.rolePermRepo.DeleteRolePerm(req.RoleId, req.PermId); err != nil {
		log.Errorw("failed to revoke perm", "roleId", req.RoleId, "permId", req.PermId, "error", err)
		return err
	}
	log.Infow("perm revoked", "roleId", req.RoleId, "permId", req.PermId)
	return nil
}

// Access answers, per permission name, whether the role holds it. When
// the caller has no live grant of the role itself, every answer is
// false: the check fuses "does the role have it" with "is the caller
// currently wearing the role". Used by UI feature gating.
func (s *RbacService) Access(req *model.AccessReq, auth *jwt.Auth) (map[string]bool, error) {
	role, err := s.roleRepo.GetRole(req.RoleId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, role.DomainId); err != nil {
		return nil, err
	}

	perms, err := s.permRepo.GetPermsByPermIds(req.PermIds)
	if err != nil {
		return nil, err
	}
	held, err := s.rolePermRepo.ListRolePerms(req.RoleId, req.PermIds)
	if err != nil {
		return nil, err
	}
	heldSet := make(map[string]struct{}, len(held))
	for _, rp := range held {
		heldSet[rp.PermId] = struct{}{}
	}

	wearing := false
	if ur, err := s.userRoleRepo.GetUserRole(auth.ID, req.RoleId); err == nil {
		wearing = ur.Expire.After(time.Now())
	} else if !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	result := make(map[string]bool, len(perms))
	for _, p := range perms {
		_, has := heldSet[p.PermId]
		result[p.Name] = has && wearing
	}
	return result, nil
}

// ListUserRoles returns the user's roles visible to the caller, limited
// to the caller's domain unless the caller is a system admin.
func (s *RbacService) ListUserRoles(userId string, auth *jwt.Auth) ([]model.Role, error) {
	if !auth.IsAdmin && auth.DomainID == "" {
		return nil, errs.ErrMissingDomain
	}
	rows, err := s.userRoleRepo.ListUserRolesByUserId(userId)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.RoleId)
	}
	roles, err := s.roleRepo.GetRolesByRoleIds(ids)
	if err != nil {
		return nil, err
	}
	if auth.IsAdmin {
		return roles, nil
	}
	scoped := make([]model.Role, 0, len(roles))
	for _, r := range roles {
		if r.DomainId == auth.DomainID {
			scoped = append(scoped, r)
		}
	}
	return scoped, nil
}

// ListRoleUsers returns the grant rows for a role.
func (s *RbacService) ListRoleUsers(roleId string, auth *jwt.Auth) ([]model.UserRole, error) {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, role.DomainId); err != nil {
		return nil, err
	}
	return s.userRoleRepo.ListUserRolesByRoleId(roleId)
}

// ListUserOrgs returns the user's organizations visible to the caller.
func (s *RbacService) ListUserOrgs(userId string, auth *jwt.Auth) ([]model.Org, error) {
	if !auth.IsAdmin && auth.DomainID == "" {
		return nil, errs.ErrMissingDomain
	}
	rows, err := s.userOrgRepo.ListUserOrgsByUserId(userId)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.OrgId)
	}
	orgs, err := s.orgRepo.GetOrgsByOrgIds(ids)
	if err != nil {
		return nil, err
	}
	if auth.IsAdmin {
		return orgs, nil
	}
	scoped := make([]model.Org, 0, len(orgs))
	for _, o := range orgs {
		if o.DomainId == auth.DomainID {
			scoped = append(scoped, o)
		}
	}
	return scoped, nil
}

// ListUserDomains returns the domains where the user holds a live role.
// Callers may list themselves; anyone else requires the system-admin
// override.
func (s *RbacService) ListUserDomains(userId string, auth *jwt.Auth) ([]model.Domain, error) {
	if userId != auth.ID {
		if err := authz.CanAdminister(auth); err != nil {
			return nil, err
		}
	}
	rows, err := s.userRoleRepo.ListUserRolesByUserId(userId)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.Expire.After(now) {
			ids = append(ids, r.RoleId)
		}
	}
	roles, err := s.roleRepo.GetRolesByRoleIds(ids)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	domains := []model.Domain{}
	for _, r := range roles {
		if seen[r.DomainId] {
			continue
		}
		seen[r.DomainId] = true
		domain, err := s.domainRepo.GetDomain(r.DomainId)
		if err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				continue
			}
			return nil, err
		}
		domains = append(domains, *domain)
	}
	return domains, nil
}

// ListOrgUsers returns the membership rows for an organization.
func (s *RbacService) ListOrgUsers(orgId string, auth *jwt.Auth) ([]model.UserOrg, error) {
	org, err := s.orgRepo.GetOrg(orgId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, org.DomainId); err != nil {
		return nil, err
	}
	return s.userOrgRepo.ListUserOrgsByOrgId(orgId)
}

// ListRolePerms returns the permissions attached to a role.
func (s *RbacService) ListRolePerms(roleId string, auth *jwt.Auth) ([]model.Perm, error) {
	role, err := s.roleRepo.GetRole(roleId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, role.DomainId); err != nil {
		return nil, err
	}
	rows, err := s.rolePermRepo.ListRolePermsByRoleId(roleId)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.PermId)
	}
	return s.permRepo.GetPermsByPermIds(ids)
}
