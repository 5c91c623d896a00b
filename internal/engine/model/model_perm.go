package model

// Perm is a named permission scoped to one domain. Roles hold
// permissions through RolePerm rows.
type Perm struct {
	BaseModel
	PermId      string `gorm:"column:perm_id;not null;uniqueIndex" json:"permId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Value       string `gorm:"column:value;not null" json:"value"`
	DomainId    string `gorm:"column:domain_id;not null;index" json:"domainId"`
	IsDeleted   int    `gorm:"column:is_deleted;not null;default:0" json:"isDeleted"`
}

func (p *Perm) TableName() string {
	return "t_perm"
}

// CreatePermReq request for creating permission
type CreatePermReq struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
	Value       string `json:"value" validate:"required,min=2,max=64"`
	DomainId    string `json:"domainId"`
}

// UpdatePermReq request for updating permission
type UpdatePermReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Value       *string `json:"value,omitempty" validate:"omitempty,min=2,max=64"`
}
