package model

// Org is an organization scoped to one domain. Users belong to
// organizations through UserOrg rows.
type Org struct {
	BaseModel
	OrgId       string `gorm:"column:org_id;not null;uniqueIndex" json:"orgId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	DomainId    string `gorm:"column:domain_id;not null;index" json:"domainId"`
	CreatedBy   string `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy   string `gorm:"column:updated_by" json:"updatedBy"`
	IsDeleted   int    `gorm:"column:is_deleted;not null;default:0" json:"isDeleted"`
}

func (o *Org) TableName() string {
	return "t_org"
}

// CreateOrgReq request for creating organization
type CreateOrgReq struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
	DomainId    string `json:"domainId"`
}

// UpdateOrgReq request for updating organization
type UpdateOrgReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
}
