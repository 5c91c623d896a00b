package service

import (
	"time"

	"github.com/go-warden/warden/internal/engine/authz"
	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/id"
	"github.com/go-warden/warden/pkg/log"
)

type DomainService struct {
	domainRepo repo.IDomainRepository
	userRepo   repo.IUserRepository
	tx         repo.Tx
	cfg        *conf.AppConfig
}

func NewDomainService(repos *repo.Repositories, tx repo.Tx, cfg *conf.AppConfig) *DomainService {
	return &DomainService{
		domainRepo: repos.Domain,
		userRepo:   repos.User,
		tx:         tx,
		cfg:        cfg,
	}
}

// CreateDomain bootstraps a tenant: the admin role, its grant to the
// designated admin user, the member role and the domain row commit as
// one unit. A failure at any step leaves no rows behind.
func (ds *DomainService) CreateDomain(req *model.CreateDomainReq, auth *jwt.Auth) (*model.Domain, error) {
	if err := authz.CanAdminister(auth); err != nil {
		return nil, err
	}

	if _, err := ds.userRepo.GetUser(req.AdminUserId); err != nil {
		log.Errorw("domain admin user not found", "userId", req.AdminUserId, "error", err)
		return nil, errs.ErrUserNotExist
	}

	domainId := id.GetUUID()
	now := time.Now()

	adminRole := &model.Role{
		RoleId:      id.GetUUID(),
		Name:        ds.cfg.Domain.AdminRoleName,
		Value:       ds.cfg.Domain.AdminRoleName,
		Level:       model.AdminRoleLevel,
		DomainId:    domainId,
		CreatedBy:   auth.ID,
		UpdatedBy:   auth.ID,
		Description: "seed admin role",
	}
	memberRole := &model.Role{
		RoleId:      id.GetUUID(),
		Name:        ds.cfg.Domain.CommonRoleName,
		Value:       ds.cfg.Domain.CommonRoleName,
		Level:       model.MemberRoleLevel,
		DomainId:    domainId,
		CreatedBy:   auth.ID,
		UpdatedBy:   auth.ID,
		Description: "seed member role",
	}
	domain := &model.Domain{
		DomainId:      domainId,
		Name:          req.Name,
		Description:   req.Description,
		AdminRoleId:   adminRole.RoleId,
		DefaultRoleId: memberRole.RoleId,
	}

	err := ds.tx(func(r *repo.Repositories) error {
		if err := r.Role.CreateRole(adminRole); err != nil {
			return err
		}
		if err := r.UserRole.CreateUserRole(&model.UserRole{
			UserId:    req.AdminUserId,
			RoleId:    adminRole.RoleId,
			RoleLevel: adminRole.Level,
			Expire:    now.Add(model.GrantExpire),
		}); err != nil {
			return err
		}
		if err := r.Role.CreateRole(memberRole); err != nil {
			return err
		}
		return r.Domain.CreateDomain(domain)
	})
	if err != nil {
		log.Errorw("domain bootstrap failed", "name", req.Name, "error", err)
		return nil, errs.Wrap(errs.ErrTransactionFailed, err.Error())
	}

	log.Infow("domain created", "domainId", domainId, "name", req.Name, "adminUserId", req.AdminUserId)
	return domain, nil
}

func (ds *DomainService) GetDomain(domainId string, auth *jwt.Auth) (*model.Domain, error) {
	if err := authz.CanReadDomain(auth, domainId); err != nil {
		return nil, err
	}
	return ds.domainRepo.GetDomain(domainId)
}

// ListDomains is cross-tenant, system admins only.
func (ds *DomainService) ListDomains(pageNum, pageSize int, auth *jwt.Auth) ([]model.Domain, int64, error) {
	if err := authz.CanAdminister(auth); err != nil {
		return nil, 0, err
	}
	return ds.domainRepo.ListDomains(pageNum, pageSize)
}

func (ds *DomainService) UpdateDomain(domainId string, req *model.UpdateDomainReq, auth *jwt.Auth) error {
	if err := authz.CanActInDomain(auth, domainId); err != nil {
		return err
	}
	if _, err := ds.domainRepo.GetDomain(domainId); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if len(updates) == 0 {
		return nil
	}
	return ds.domainRepo.UpdateDomain(domainId, updates)
}

// DeleteDomain retires a tenant, system admins only.
func (ds *DomainService) DeleteDomain(domainId string, auth *jwt.Auth) error {
	if err := authz.CanAdminister(auth); err != nil {
		return err
	}
	if _, err := ds.domainRepo.GetDomain(domainId); err != nil {
		return err
	}
	if err := ds.domainRepo.DeleteDomain(domainId); err != nil {
		log.Errorw("failed to delete domain", "domainId", domainId, "error", err)
		return err
	}
	log.Infow("domain deleted", "domainId", domainId)
	return nil
}
