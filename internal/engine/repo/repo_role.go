package repo

import (
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IRoleRepository interface {
	CreateRole(role *model.Role) error
	GetRole(roleId string) (*model.Role, error)
	GetRoleByName(domainId, name string) (*model.Role, error)
	GetRolesByRoleIds(roleIds []string) ([]model.Role, error)
	ListRoles(domainId string, pageNum, pageSize int) ([]model.Role, int64, error)
	UpdateRole(roleId string, updates map[string]any) error
	DeleteRole(roleId string) error
}

type RoleRepo struct {
	database.IDatabase
}

func NewRoleRepo(db database.IDatabase) IRoleRepository {
	return &RoleRepo{
		IDatabase: db,
	}
}

func (r *RoleRepo) CreateRole(role *model.Role) error {
	return r.Database().Table(role.TableName()).Create(role).Error
}

func (r *RoleRepo) GetRole(roleId string) (*model.Role, error) {
	var role model.Role
	err := r.Database().
		Where("role_id = ? AND is_deleted = ?", roleId, model.NotDeleted).
		First(&role).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

func (r *RoleRepo) GetRoleByName(domainId, name string) (*model.Role, error) {
	var role model.Role
	err := r.Database().
		Where("domain_id = ? AND name = ? AND is_deleted = ?", domainId, name, model.NotDeleted).
		First(&role).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &role, nil
}

func (r *RoleRepo) GetRolesByRoleIds(roleIds []string) ([]model.Role, error) {
	if len(roleIds) == 0 {
		return []model.Role{}, nil
	}
	var roles []model.Role
	err := r.Database().
		Where("role_id IN ? AND is_deleted = ?", roleIds, model.NotDeleted).
		Find(&roles).Error
	return roles, err
}

// ListRoles lists a domain's roles with pagination.
func (r *RoleRepo) ListRoles(domainId string, pageNum, pageSize int) ([]model.Role, int64, error) {
	var roles []model.Role
	var role model.Role
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := r.Database().Table(role.TableName()).
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.Database().
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Offset(offset).Limit(pageSize).
		Order("level ASC, created_at DESC").
		Find(&roles).Error; err != nil {
		return nil, 0, err
	}
	return roles, count, nil
}

func (r *RoleRepo) UpdateRole(roleId string, updates map[string]any) error {
	var role model.Role
	return r.Database().Table(role.TableName()).
		Where("role_id = ? AND is_deleted = ?", roleId, model.NotDeleted).
		Updates(updates).Error
}

// DeleteRole soft-deletes the role.
func (r *RoleRepo) DeleteRole(roleId string) error {
	var role model.Role
	return r.Database().Table(role.TableName()).
		Where("role_id = ?", roleId).
		Update("is_deleted", model.Deleted).Error
}
