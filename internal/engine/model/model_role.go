package model

// Role is always scoped to exactly one domain. Level is ordered with
// lower = more privileged: 1 is the domain admin, 999 the default member.
type Role struct {
	BaseModel
	RoleId      string `gorm:"column:role_id;not null;uniqueIndex" json:"roleId"`
	Name        string `gorm:"column:name;not null" json:"name"`
	Description string `gorm:"column:description" json:"description"`
	Value       string `gorm:"column:value;not null" json:"value"`
	Level       int    `gorm:"column:level;not null" json:"level"`
	DomainId    string `gorm:"column:domain_id;not null;index" json:"domainId"`
	CreatedBy   string `gorm:"column:created_by" json:"createdBy"`
	UpdatedBy   string `gorm:"column:updated_by" json:"updatedBy"`
	IsDeleted   int    `gorm:"column:is_deleted;not null;default:0" json:"isDeleted"`
}

func (r *Role) TableName() string {
	return "t_role"
}

const (
	// AdminRoleLevel is the seed admin role's level.
	AdminRoleLevel = 1
	// MemberRoleLevel is the seed member role's level and the level
	// assumed for principals holding no role.
	MemberRoleLevel = 999
)

// CreateRoleReq request for creating role
type CreateRoleReq struct {
	Name        string `json:"name" validate:"required,min=2,max=64"`
	Description string `json:"description" validate:"max=255"`
	Value       string `json:"value" validate:"required,min=2,max=64"`
	Level       int    `json:"level" validate:"required,min=1,max=999"`
	DomainId    string `json:"domainId"`
}

// UpdateRoleReq request for updating role
type UpdateRoleReq struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=64"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=255"`
	Value       *string `json:"value,omitempty" validate:"omitempty,min=2,max=64"`
	Level       *int    `json:"level,omitempty" validate:"omitempty,min=1,max=999"`
}
