package service

import (
	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/cache"
)

// Services bundles every service behind one handle for the router.
type Services struct {
	Domain *DomainService
	Role   *RoleService
	Perm   *PermService
	Org    *OrgService
	User   *UserService
	Rbac   *RbacService
}

func NewServices(repos *repo.Repositories, tx repo.Tx, rc cache.ICache, cfg *conf.AppConfig) *Services {
	return &Services{
		Domain: NewDomainService(repos, tx, cfg),
		Role:   NewRoleService(repos.Role),
		Perm:   NewPermService(repos.Perm),
		Org:    NewOrgService(repos.Org),
		User:   NewUserService(repos, rc, cfg),
		Rbac:   NewRbacService(repos, tx),
	}
}
