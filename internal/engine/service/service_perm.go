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

type PermService struct {
	permRepo repo.IPermRepository
}

func NewPermService(permRepo repo.IPermRepository) *PermService {
	return &PermService{
		permRepo: permRepo,
	}
}

func (ps *PermService) CreatePerm(req *model.CreatePermReq, auth *jwt.Auth) (*model.Perm, error) {
	domainId := req.DomainId
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanActInDomain(auth, domainId); err != nil {
		return nil, err
	}

	if existing, err := ps.permRepo.GetPermByName(domainId, req.Name); err == nil && existing != nil {
		return nil, errs.ErrAlreadyExists
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	perm := &model.Perm{
		PermId:      id.GetUUID(),
		Name:        req.Name,
		Description: req.Description,
		Value:       req.Value,
		DomainId:    domainId,
	}
	if err := ps.permRepo.CreatePerm(perm); err != nil {
		log.Errorw("failed to create perm", "name", req.Name, "error", err)
		return nil, err
	}

	log.Infow("perm created", "permId", perm.PermId, "domainId", domainId)
	return perm, nil
}

func (ps *PermService) GetPerm(permId string, auth *jwt.Auth) (*model.Perm, error) {
	perm, err := ps.permRepo.GetPerm(permId)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadDomain(auth, perm.DomainId); err != nil {
		return nil, err
	}
	return perm, nil
}

func (ps *PermService) ListPerms(domainId string, pageNum, pageSize int, auth *jwt.Auth) ([]model.Perm, int64, error) {
	if domainId == "" {
		domainId = auth.DomainID
	}
	if err := authz.CanReadDomain(auth, domainId); err != nil {
		return nil, 0, err
	}
	return ps.permRepo.ListPerms(domainId, pageNum, pageSize)
}

func (ps *PermService) UpdatePerm(permId string, req *model.UpdatePermReq, auth *jwt.Auth) error {
	perm, err := ps.permRepo.GetPerm(permId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, perm.DomainId); err != nil {
		return err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Value != nil {
		updates["value"] = *req.Value
	}
	if len(updates) == 0 {
		return nil
	}

	if err := ps.permRepo.UpdatePerm(permId, updates); err != nil {
		log.Errorw("failed to update perm", "permId", permId, "error", err)
		return err
	}
	return nil
}

func (ps *PermService) DeletePerm(permId string, auth *jwt.Auth) error {
	perm, err := ps.permRepo.GetPerm(permId)
	if err != nil {
		return err
	}
	if err := authz.CanActInDomain(auth, perm.DomainId); err != nil {
		return err
	}
	if err := ps.permRepo.DeletePerm(permId); err != nil {
		log.Errorw("failed to delete perm", "permId", permId, "error", err)
		return err
	}
	log.Infow("perm deleted", "permId", permId)
	return nil
}
