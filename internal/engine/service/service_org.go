package service

import (
	"errors"

	"github.com/go-warden/warden/internal/engine/authz"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/id"
	"github.com/go-warden/warden/pkg/log"
)

type OrgService struct {
	orgRepo repo.IOrgRepository
}

func NewOrgService(orgRepo repo.IOrgRepository) *OrgService {
	return &OrgService{
		orgRepo: orgRepo,
	}
}

func (os *OrgService) CreateOrg(req *model.CreateOrgReq, auth *jwt.Auth) (*model.Org, error) {
	domainId := req.DomainId
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanActInDomain(auth, domainId); err != nil {
		return nil, err
	}

	if existing, err := os.orgRepo.GetOrgByName(domainId, req.Name); err == nil && existing != nil {
		return nil, errs.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	org := &model.Org{
		OrgId:       id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		DomainId:    domainId,
		CreatedBy:   auth.ID,
		UpdatedBy:   auth.ID,
	}
	if err := os.orgRepo.CreateOrg(org); err != nil {
		log.Errorw("failed to create org", "name", req.Name, "error", err)
		return nil, err
	}

	log.Infow("org created", "orgId", org.OrgId, "domainId", domainId)
	return org, nil
}

func (os *OrgService) GetOrg(orgId string, auth *jwt.Auth) (*model.Org, error) {
	org, err := os.orgRepo.GetOrg(orgId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, org.DomainId); err != nil {
		return nil, err
	}
	return org, nil
}

func (os *OrgService) ListOrgs(domainId string, pageNum, pageSize int, auth *jwt.Auth) ([]model.Org, int64, error) {
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanReadDomain(auth, domainId); err != nil {
		return nil, 0, err
	}
	return os.orgRepo.ListOrgs(domainId, pageNum, pageSize)
}

func (os *OrgService) UpdateOrg(orgId string, req *model.UpdateOrgReq, auth *jwt.Auth) error {
	org, err := os.orgRepo.GetOrg(orgId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, org.DomainId); err != nil {
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
	updates["updated_by"] = auth.ID

	if err := os.orgRepo.UpdateOrg(orgId, updates); err != nil {
		log.Errorw("failed to update org", "orgId", orgId, "error", err)
		return err
	}
	return nil
}

func (os *OrgService) DeleteOrg(orgId string, auth *jwt.Auth) error {
	org, err := os.orgRepo.GetOrg(orgId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, org.DomainId); err != nil {
		return err
	}
	if err := os.orgRepo.DeleteOrg(orgId); err != nil {
		log.Errorw("failed to delete org", "orgId", orgId, "error", err)
		return err
	}
	log.Infow("org deleted", "orgId", orgId)
	return nil
}
