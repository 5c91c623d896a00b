package model

// Domain is a tenant. Every role, permission and organization belongs to
// exactly one domain. The two role references point at the seed roles
// created during bootstrap and must belong to this domain.
type Domain struct {
	BaseModel
	DomainId      string `gorm:"column:domain_id;not null;uniqueIndex" json:"domainId"`
	Name          string `gorm:"column:name;not null" json:"name"`
	Description   string `gorm:"column:description" json:"description"`
	AdminRoleId   string `gorm:"column:admin_role_id;not null" json:"adminRoleId"`
	DefaultRoleId string `gorm:"column:default_role_id;not null" json:"defaultRoleId"`
	IsDeleted     int    `gorm:"column:is_deleted;not null;default:0" json:"isDeleted"`
}

func (d *Domain) TableName() string {
	return "t_domain"
}

// CreateDomainReq bootstraps a domain with its two seed roles.
type CreateDomainReq struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
	AdminUserId string `json:"adminUserId" validate:"required"`
}

// UpdateDomainReq updates mutable domain fields.
type UpdateDomainReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}
