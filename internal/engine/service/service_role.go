package service

import (
	"errors"

	"github.com/go-warden/warden/internal/engine/authz"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/id"
	"github.com/go-warden/warden/pkg/log"
)

type RoleService struct {
	roleRepo repo.IRoleRepository
}

func NewRoleService(roleRepo repo.IRoleRepository) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
	}
}

// CreateRole creates a role in the caller's domain. The caller must be
// at least as privileged as the level it assigns.
func (rs *RoleService) CreateRole(req *model.CreateRoleReq, auth *jwt.Auth) (*model.Role, error) {
	domainId := req.DomainId
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanActOnLevel(auth, domainId, req.Level); err != nil {
		return nil, err
	}

	if existing, err := rs.roleRepo.GetRoleByName(domainId, req.Name); err == nil && existing != nil {
		return nil, errs.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	role := &model.Role{
		RoleId:      id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		Level:       req.Level,
		DomainId:    domainId,
		CreatedBy:   auth.ID,
		UpdatedBy:   auth.ID,
	}
	if err := rs.roleRepo.CreateRole(role); err != nil {
		log.Errorw("failed to create role", "name", req.Name, "error", err)
		return nil, err
	}

	log.Infow("role created", "roleId", role.RoleId, "domainId", domainId)
	return role, nil
}

func (rs *RoleService) GetRole(roleId string, auth *jwt.Auth) (*model.Role, error) {
	role, err := rs.roleRepo.GetRole(roleId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, role.DomainId); err != nil {
		return nil, err
	}
	return role, nil
}

func (rs *RoleService) ListRoles(domainId string, pageNum, pageSize int, auth *jwt.Auth) ([]model.Role, int64, error) {
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanReadDomain(auth, domainId); err != nil {
		return nil, 0, err
	}
	return rs.roleRepo.ListRoles(domainId, pageNum, pageSize)
}

func (rs *RoleService) UpdateRole(roleId string, req *model.UpdateRoleReq, auth *jwt.Auth) error {
	role, err := rs.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if req.Level != nil {
		// raising a role above the caller's own privilege is acting
		// on that level too
		if err := authz.CanActOnLevel(auth, role.DomainId, *req.Level); err != nil {
			return err
		}
		updates["level"] = *req.Level
	}
	if len(updates) == 0 {
		return nil
	}
	updates["updated_by"] = auth.ID

	if err := rs.roleRepo.UpdateRole(roleId, updates); err != nil {
		log.Errorw("failed to update role", "roleId", roleId, "error", err)
		return err
	}
	return nil
}

func (rs *RoleService) DeleteRole(roleId string, auth *jwt.Auth) error {
	role, err := rs.roleRepo.GetRole(roleId)
	if err != nil {
		return err
	}
	if err := authz.CanActOnRole(auth, role); err != nil {
		return err
	}
	if err := rs.roleRepo.DeleteRole(roleId); err != nil {
		log.Errorw("failed to delete role", "roleId", roleId, "error", err)
		return err
	}
	log.Infow("role deleted", "roleId", roleId)
	return nil
}
