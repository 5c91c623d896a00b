package repo

import (
	"time"

	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IUserRepository interface {
	CreateUser(user *model.User) error
	GetUser(userId string) (*model.User, error)
	GetUserByUsername(username string) (*model.User, error)
	GetUserByAccount(account string) (*model.User, error)
	ListUsers(pageNum, pageSize int) ([]model.User, int64, error)
	UpdateUser(userId string, updates map[string]any) error
	UpdateLastLogin(userId string, at time.Time) error
	DisableUser(userId string) error
}

type UserRepo struct {
	database.IDatabase
}

func NewUserRepo(db database.IDatabase) IUserRepository {
	return &UserRepo{
		IDatabase: db,
	}
}

func (u *UserRepo) CreateUser(user *model.User) error {
	return u.Database().Table(user.TableName()).Create(user).Error
}

func (u *UserRepo) GetUser(userId string) (*model.User, error) {
	var user model.User
	err := u.Database().
		Where("user_id = ?", userId).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (u *UserRepo) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := u.Database().
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// GetUserByAccount resolves a login identifier, username or email.
func (u *UserRepo) GetUserByAccount(account string) (*model.User, error) {
	var user model.User
	err := u.Database().
		Where("username = ? OR email = ?", account, account).
		First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (u *UserRepo) ListUsers(pageNum, pageSize int) ([]model.User, int64, error) {
	var users []model.User
	var user model.User
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := u.Database().Table(user.TableName()).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := u.Database().
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, count, nil
}

func (u *UserRepo) UpdateUser(userId string, updates map[string]any) error {
	var user model.User
	return u.Database().Table(user.TableName()).
		Where("user_id = ?", userId).
		Updates(updates).Error
}

func (u *UserRepo) UpdateLastLogin(userId string, at time.Time) error {
	var user model.User
	return u.Database().Table(user.TableName()).
		Where("user_id = ?", userId).
		Update("last_logined_at", at).Error
}

func (u *UserRepo) DisableUser(userId string) error {
	var user model.User
	return u.Database().Table(user.TableName()).
		Where("user_id = ?", userId).
		Update("is_actived", model.UserDisabled).Error
}
