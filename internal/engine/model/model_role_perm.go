package model

// RolePerm attaches a permission to a role. Both sides must belong to
// the same domain; at most one row exists per pair.
type RolePerm struct {
	BaseModel
	RoleId string `gorm:"column:role_id;not null;index;uniqueIndex:uk_role_perm,priority:1" json:"roleId"`
	PermId string `gorm:"column:perm_id;not null;index;uniqueIndex:uk_role_perm,priority:2" json:"permId"`
}

func (rp *RolePerm) TableName() string {
	return "t_role_perm"
}

// GrantPermReq request for attaching a permission to a role
type GrantPermReq struct {
	RoleId string `json:"roleId" validate:"required"`
	PermId string `json:"permId" validate:"required"`
}

// AccessReq asks, per permission, whether the role holds it. Results are
// zeroed when the caller does not currently hold the role.
type AccessReq struct {
	RoleId  string   `json:"roleId" validate:"required"`
	PermIds []string `json:"permIds" validate:"required,min=1"`
}
