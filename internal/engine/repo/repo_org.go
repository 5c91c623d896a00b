package repo

import (
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IOrgRepository interface {
	CreateOrg(org *model.Org) error
	GetOrg(orgId string) (*model.Org, error)
	GetOrgByName(domainId, name string) (*model.Org, error)
	GetOrgsByOrgIds(orgIds []string) ([]model.Org, error)
	ListOrgs(domainId string, pageNum, pageSize int) ([]model.Org, int64, error)
	UpdateOrg(orgId string, updates map[string]any) error
	DeleteOrg(orgId string) error
}

type OrgRepo struct {
	database.IDatabase
}

func NewOrgRepo(db database.IDatabase) IOrgRepository {
	return &OrgRepo{
		IDatabase: db,
	}
}

func (o *OrgRepo) CreateOrg(org *model.Org) error {
	return o.Database().Table(org.TableName()).Create(org).Error
}

func (o *OrgRepo) GetOrg(orgId string) (*model.Org, error) {
	var org model.Org
	err := o.Database().
		Where("org_id = ? AND is_deleted = ?", orgId, model.NotDeleted).
		First(&org).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

func (o *OrgRepo) GetOrgByName(domainId, name string) (*model.Org, error) {
	var org model.Org
	err := o.Database().
		Where("domain_id = ? AND name = ? AND is_deleted = ?", domainId, name, model.NotDeleted).
		First(&org).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &org, nil
}

func (o *OrgRepo) GetOrgsByOrgIds(orgIds []string) ([]model.Org, error) {
	if len(orgIds) == 0 {
		return []model.Org{}, nil
	}
	var orgs []model.Org
	err := o.Database().
		Where("org_id IN ? AND is_deleted = ?", orgIds, model.NotDeleted).
		Find(&orgs).Error
	return orgs, err
}

func (o *OrgRepo) ListOrgs(domainId string, pageNum, pageSize int) ([]model.Org, int64, error) {
	var orgs []model.Org
	var org model.Org
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := o.Database().Table(org.TableName()).
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := o.Database().
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&orgs).Error; err != nil {
		return nil, 0, err
	}
	return orgs, count, nil
}

func (o *OrgRepo) UpdateOrg(orgId string, updates map[string]any) error {
	var org model.Org
	return o.Database().Table(org.TableName()).
		Where("org_id = ? AND is_deleted = ?", orgId, model.NotDeleted).
		Updates(updates).Error
}

// DeleteOrg soft-deletes the organization.
func (o *OrgRepo) DeleteOrg(orgId string) error {
	var org model.Org
	return o.Database().Table(org.TableName()).
		Where("org_id = ?", orgId).
		Update("is_deleted", model.Deleted).Error
}
