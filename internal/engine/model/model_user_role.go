package model

import "time"

// UserRole grants a role to a user. RoleLevel is copied from the role at
// grant time; Expire bounds the grant's validity for new decisions.
// At most one row exists per (user_id, role_id) pair.
type UserRole struct {
	BaseModel
	UserId    string    `gorm:"column:user_id;not null;index;uniqueIndex:uk_user_role,priority:1" json:"userId"`
	RoleId    string    `gorm:"column:role_id;not null;index;uniqueIndex:uk_user_role,priority:2" json:"roleId"`
	RoleLevel int       `gorm:"column:role_level;not null" json:"roleLevel"`
	Expire    time.Time `gorm:"column:expire;not null" json:"expire"`
}

func (ur *UserRole) TableName() string {
	return "t_user_role"
}

// GrantExpire is the default validity window for new grants.
const GrantExpire = 30 * 24 * time.Hour

// GrantRoleReq request for granting a role to a user
type GrantRoleReq struct {
	UserId string `json:"userId" validate:"required"`
	RoleId string `json:"roleId" validate:"required"`
}

// ChangeRolesReq replaces all of a user's roles within the acting domain.
type ChangeRolesReq struct {
	UserId  string   `json:"userId" validate:"required"`
	RoleIds []string `json:"roleIds" validate:"required"`
}

// ExtendExpireReq pushes out the expiry of an existing grant.
type ExtendExpireReq struct {
	UserId string    `json:"userId" validate:"required"`
	RoleId string    `json:"roleId" validate:"required"`
	Expire time.Time `json:"expire" validate:"required"`
}
