package repo

import (
	"time"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IUserRoleRepository interface {
	CreateUserRole(ur *model.UserRole) error
	GetUserRole(userId, roleId string) (*model.UserRole, error)
	ListUserRolesByUserId(userId string) ([]model.UserRole, error)
	ListUserRolesByRoleId(roleId string) ([]model.UserRole, error)
	DeleteUserRole(userId, roleId string) error
	DeleteUserRoles(userId string, roleIds []string) error
	UpdateExpire(userId, roleId string, expire time.Time) error
	DeleteExpired(before time.Time) (int64, error)
}

type UserRoleRepo struct {
	database.IDatabase
}

func NewUserRoleRepo(db database.IDatabase) IUserRoleRepository {
	return &UserRoleRepo{
		IDatabase: db,
	}
}

func (ur *UserRoleRepo) CreateUserRole(row *model.UserRole) error {
	return ur.Database().Table(row.TableName()).Create(row).Error
}

func (ur *UserRoleRepo) GetUserRole(userId, roleId string) (*model.UserRole, error) {
	var row model.UserRole
	err := ur.Database().
		Where("user_id = ? AND role_id = ?", userId, roleId).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (ur *UserRoleRepo) ListUserRolesByUserId(userId string) ([]model.UserRole, error) {
	var rows []model.UserRole
	err := ur.Database().
		Where("user_id = ?", userId).
		Find(&rows).Error
	return rows, err
}

func (ur *UserRoleRepo) ListUserRolesByRoleId(roleId string) ([]model.UserRole, error) {
	var rows []model.UserRole
	err := ur.Database().
		Where("role_id = ?", roleId).
		Find(&rows).Error
	return rows, err
}

// DeleteUserRole hard-deletes, associations are not source-of-truth rows.
func (ur *UserRoleRepo) DeleteUserRole(userId, roleId string) error {
	var row model.UserRole
	return ur.Database().
		Where("user_id = ? AND role_id = ?", userId, roleId).
		Delete(&row).Error
}

func (ur *UserRoleRepo) DeleteUserRoles(userId string, roleIds []string) error {
	if len(roleIds) == 0 {
		return nil
	}
	var row model.UserRole
	return ur.Database().
		Where("user_id = ? AND role_id IN ?", userId, roleIds).
		Delete(&row).Error
}

func (ur *UserRoleRepo) UpdateExpire(userId, roleId string, expire time.Time) error {
	var row model.UserRole
	return ur.Database().Table(row.TableName()).
		Where("user_id = ? AND role_id = ?", userId, roleId).
		Update("expire", expire).Error
}

// DeleteExpired purges grants whose window closed before the cutoff.
func (ur *UserRoleRepo) DeleteExpired(before time.Time) (int64, error) {
	var row model.UserRole
	res := ur.Database().
		Where("expire < ?", before).
		Delete(&row)
	return res.RowsAffected, res.Error
}
