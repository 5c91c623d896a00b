package model

import "time"

// User is a global account. Users are not owned by a domain; they gain
// domain context through role and organization grants.
type User struct {
	BaseModel
	UserId        string    `gorm:"column:user_id;not null;uniqueIndex" json:"userId"`
	Username      string    `gorm:"column:username;not null;uniqueIndex" json:"username"`
	Password      string    `gorm:"column:password;not null" json:"-"`
	Email         string    `gorm:"column:email" json:"email"`
	Avatar        string    `gorm:"column:avatar" json:"avatar"`
	Memo          string    `gorm:"column:memo" json:"memo"`
	SysRole       string    `gorm:"column:sys_role" json:"sysRole"` // "admin" grants the system-wide override
	IsActived     int       `gorm:"column:is_actived;not null;default:1" json:"isActived"`
	LastLoginedAt time.Time `gorm:"column:last_logined_at" json:"lastLoginedAt"`
}

func (u *User) TableName() string {
	return "t_user"
}

const (
	UserDisabled = 0
	UserActived  = 1
)

// RegisterReq request for user registration
type RegisterReq struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6,max=64"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// LoginReq request for user login
type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UpdateUserReq updates mutable profile fields.
type UpdateUserReq struct {
	Email  *string `json:"email,omitempty" validate:"omitempty,email"`
	Avatar *string `json:"avatar,omitempty"`
	Memo   *string `json:"memo,omitempty" validate:"omitempty,max=255"`
}

// ChangePasswordReq request for changing the caller's own password
type ChangePasswordReq struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=64"`
}

// ResetPasswordReq resets another user's password to a generated one.
type ResetPasswordReq struct {
	UserId string `json:"userId" validate:"required"`
}

// LoginRep is the login/connect response payload.
type LoginRep struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
