package repo

import (
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/database"
)

type IDomainRepository interface {
	CreateDomain(domain *model.Domain) error
	GetDomain(domainId string) (*model.Domain, error)
	ListDomains(pageNum, pageSize int) ([]model.Domain, int64, error)
	UpdateDomain(domainId string, updates map[string]any) error
	DeleteDomain(domainId string) error
}

type DomainRepo struct {
	database.IDatabase
}

func NewDomainRepo(db database.IDatabase) IDomainRepository {
	return &DomainRepo{
		IDatabase: db,
	}
}

func (d *DomainRepo) CreateDomain(domain *model.Domain) error {
	return d.Database().Table(domain.TableName()).Create(domain).Error
}

// GetDomain returns a live domain, soft-deleted rows excluded.
func (d *DomainRepo) GetDomain(domainId string) (*model.Domain, error) {
	var domain model.Domain
	err := d.Database().
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		First(&domain).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &domain, nil
}

func (d *DomainRepo) ListDomains(pageNum, pageSize int) ([]model.Domain, int64, error) {
	var domains []model.Domain
	var domain model.Domain
	var count int64
	offset := (pageNum - 1) * pageSize

	if err := d.Database().Table(domain.TableName()).
		Where("is_deleted = ?", model.NotDeleted).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := d.Database().
		Where("is_deleted = ?", model.NotDeleted).
		Offset(offset).Limit(pageSize).
		Order("created_at DESC").
		Find(&domains).Error; err != nil {
		return nil, 0, err
	}
	return domains, count, nil
}

func (d *DomainRepo) UpdateDomain(domainId string, updates map[string]any) error {
	var domain model.Domain
	return d.Database().Table(domain.TableName()).
		Where("domain_id = ? AND is_deleted = ?", domainId, model.NotDeleted).
		Updates(updates).Error
}

// DeleteDomain soft-deletes, the row stays for audit.
func (d *DomainRepo) DeleteDomain(domainId string) error {
	var domain model.Domain
	return d.Database().Table(domain.TableName()).
		Where("domain_id = ?", domainId).
		Update("is_deleted", model.Deleted).Error
}
