package repo

import (
	"time"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IUserOrgRepository interface {
	CreateUserOrg(uo *model.UserOrg) error
	GetUserOrg(userId, orgId string) (*model.UserOrg, error)
	ListUserOrgsByUserId(userId string) ([]model.UserOrg, error)
	ListUserOrgsByOrgId(orgId string) ([]model.UserOrg, error)
	DeleteUserOrg(userId, orgId string) error
	UpdateExpire(userId, orgId string, expire time.Time) error
	DeleteExpired(before time.Time) (int64, error)
}

type UserOrgRepo struct {
	database.IDatabase
}

func NewUserOrgRepo(db database.IDatabase) IUserOrgRepository {
	return &UserOrgRepo{
		IDatabase: db,
	}
}

func (uo *UserOrgRepo) CreateUserOrg(row *model.UserOrg) error {
	return uo.Database().Table(row.TableName()).Create(row).Error
}

func (uo *UserOrgRepo) GetUserOrg(userId, orgId string) (*model.UserOrg, error) {
	var row model.UserOrg
	err := uo.Database().
		Where("user_id = ? AND org_id = ?", userId, orgId).
		First(&row).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &row, nil
}

func (uo *UserOrgRepo) ListUserOrgsByUserId(userId string) ([]model.UserOrg, error) {
	var rows []model.UserOrg
	err := uo.Database().
		Where("user_id = ?", userId).
		Find(&rows).Error
	return rows, err
}

func (uo *UserOrgRepo) ListUserOrgsByOrgId(orgId string) ([]model.UserOrg, error) {
	var rows []model.UserOrg
	err := uo.Database().
		Where("org_id = ?", orgId).
		Find(&rows).Error
	return rows, err
}

func (uo *UserOrgRepo) DeleteUserOrg(userId, orgId string) error {
	var row model.UserOrg
	return uo.Database().
		Where("user_id = ? AND org_id = ?", userId, orgId).
		Delete(&row).Error
}

func (uo *UserOrgRepo) UpdateExpire(userId, orgId string, expire time.Time) error {
	var row model.UserOrg
	return uo.Database().Table(row.TableName()).
		Where("user_id = ? AND org_id = ?", userId, orgId).
		Update("expire", expire).Error
}

func (uo *UserOrgRepo) DeleteExpired(before time.Time) (int64, error) {
	var row model.UserOrg
	res := uo.Database().
		Where("expire < ?", before).
		Delete(&row)
	return res.RowsAffected, res.Error
}
