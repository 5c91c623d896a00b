package model

import "time"

// UserOrg puts a user into an organization. At most one row exists per
// (user_id, org_id) pair.
type UserOrg struct {
	BaseModel
	UserId string    `gorm:"column:user_id;not null;index;uniqueIndex:uk_user_org,priority:1" json:"userId"`
	OrgId  string    `gorm:"column:org_id;not null;index;uniqueIndex:uk_user_org,priority:2" json:"orgId"`
	Expire time.Time `gorm:"column:expire;not null" json:"expire"`
}

func (uo *UserOrg) TableName() string {
	return "t_user_org"
}

// JoinOrgReq request for adding a user to an organization
type JoinOrgReq struct {
	UserId string `json:"userId" validate:"required"`
	OrgId  string `json:"orgId" validate:"required"`
}

// JoinOrgsReq adds a user to several organizations at once.
type JoinOrgsReq struct {
	UserId string   `json:"userId" validate:"required"`
	OrgIds []string `json:"orgIds" validate:"required,min=1"`
}

// ExtendOrgExpireReq pushes out the expiry of an existing membership.
type ExtendOrgExpireReq struct {
	UserId string    `json:"userId" validate:"required"`
	OrgId  string    `json:"orgId" validate:"required"`
	Expire time.Time `json:"expire" validate:"required"`
}
