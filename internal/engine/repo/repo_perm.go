package repo

import (
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IPermRepository interface {
	CreatePerm(perm *model.Perm) error
	GetPerm(permId string) (*model.Perm, error)
	GetPermByName(domainId, name string) (*model.Perm, error)
	GetPermsByPermIds(permIds []string) ([]model.Perm, error)
	ListPerms(domainId string, pageNum, pageSize int) ([]model.Perm, int64, error)
	UpdatePerm(permId string, updates map[string]any) error
	DeletePerm(permId string) error
}

type PermRepo struct {
	database.IDatabase
}

func NewPermRepo(db database.IDatabase) IPermRepository {
	return &PermRepo{
		IDatabase: db,
	}
}

func (p *PermRepo) CreatePerm(perm *model.Perm) error {
	return p.Database().Table(perm.TableName()).Create(perm).Error
}

func (p *PermRepo) GetPerm(permId string) (*model.Perm, error) {
	var perm model.Perm
	err := p.Database().
		Where("perm_id = ? AND is_deleted = ?", permId, model.NotDeleted).
		First(&perm).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &perm, nil
}

func (p *PermRepo) GetPermByName(domainId, name string) (*model.Perm, error) {
	var perm model.Perm
	err := p.Database().
		Where("domain_id = ? AND name = ? AND is_deleted = ?", domainId, name, model.NotDeleted).
		First(&perm).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &perm, nil
}

func (p *PermRepo) GetPermsByPermIds(permIds []string) ([]model.Perm, error) {
	if len(permIds) == 0 {
		return []model.Perm{}, nil
	}
	var perms []model.Perm
	err := p.Database().
		Where("perm_id IN ? AND is_deleted = ?", permIds, model.NotDeleted).
		Find(&perms).Error
	return perms, err
}

func (p *PermRepo) ListPerms(domainId string, pageNum, pageSize int) ([]model.Perm, int64, error) {
	var perms []model.Perm
	var perm model.Perm
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := p.Database().Table(perm.TableName()).
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := p.Database().
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&perms).Error; err != nil {
		return nil, 0, err
	}
	return perms, count, nil
}

func (p *PermRepo) UpdatePerm(permId string, updates map[string]any) error {
	var perm model.Perm
	return p.Database().Table(perm.TableName()).
		Where("perm_id = ? AND is_deleted = ?", permId, model.NotDeleted).
		Updates(updates).Error
}

// DeletePerm soft-deletes the permission.
func (p *PermRepo) DeletePerm(permId string) error {
	var perm model.Perm
	return p.Database().Table(perm.TableName()).
		Where("perm_id = ?", permId).
		Update("is_deleted", model.Deleted).Error
}
