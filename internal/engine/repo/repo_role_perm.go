package repo

import (
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IRolePermRepository interface {
	CreateRolePerm(rp *model.RolePerm) error
	GetRolePerm(roleId, permId string) (*model.RolePerm, error)
	ListRolePermsByRoleId(roleId string) ([]model.RolePerm, error)
	ListRolePerms(roleId string, permIds []string) ([]model.RolePerm, error)
	DeleteRolePerm(roleId, permId string) error
}

type RolePermRepo struct {
	database.IDatabase
}

func NewRolePermRepo(db database.IDatabase) IRolePermRepository {
	return &RolePermRepo{
		IDatabase: db,
	}
}

func (rp *RolePermRepo) CreateRolePerm(row *model.RolePerm) error {
	return rp.Database().Table(row.TableName()).Create(row).Error
}

func (rp *RolePermRepo) GetRolePerm(roleId, permId string) (*model.RolePerm, error) {
	var row model.RolePerm
	err := rp.Database().
		Where("role_id = ? AND perm_id = ?", roleId, permId).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (rp *RolePermRepo) ListRolePermsByRoleId(roleId string) ([]model.RolePerm, error) {
	var rows []model.RolePerm
	err := rp.Database().
		Where("role_id = ?", roleId).
		Find(&rows).Error
	return rows, err
}

// ListRolePerms returns the subset of permIds actually held by the role.
func (rp *RolePermRepo) ListRolePerms(roleId string, permIds []string) ([]model.RolePerm, error) {
	if len(permIds) == 0 {
		return []model.RolePerm{}, nil
	}
	var rows []model.RolePerm
	err := rp.Database().
		Where("role_id = ? AND perm_id IN ?", roleId, permIds).
		Find(&rows).Error
	return rows, err
}

func (rp *RolePermRepo) DeleteRolePerm(roleId, permId string) error {
	var row model.RolePerm
	return rp.Database().
		Where("role_id = ? AND perm_id = ?", roleId, permId).
		Delete(&row).Error
}
