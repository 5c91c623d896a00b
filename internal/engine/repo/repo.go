package repo

import (
	"errors"

	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/pkg/database"
	"gorm.io/gorm"
)

// Repositories bundles every repository behind one handle.
type Repositories struct {
	Domain   IDomainRepository
	Role     IRoleRepository
	Perm     IPermRepository
	Org      IOrgRepository
	User     IUserRepository
	UserRole IUserRoleRepository
	UserOrg  IUserOrgRepository
	RolePerm IRolePermRepository
}

func NewRepositories(db database.IDatabase) *Repositories {
	return &Repositories{
		Domain:   NewDomainRepo(db),
		Role:     NewRoleRepo(db),
		Perm:     NewPermRepo(db),
		Org:      NewOrgRepo(db),
		User:     NewUserRepo(db),
		UserRole: NewUserRoleRepo(db),
		UserOrg:  NewUserOrgRepo(db),
		RolePerm: NewRolePermRepo(db),
	}
}

// Tx runs fn inside a single database transaction. Writes made through
// the Repositories passed to fn are rolled back when fn returns an error.
type Tx func(fn func(r *Repositories) error) error

// NewTx builds the transaction runner used by multi-write workflows
// such as domain bootstrap and replace-all role changes.
func NewTx(db database.IDatabase) Tx {
	return func(fn func(r *Repositories) error) error {
		return db.Database().Transaction(func(tx *gorm.DB) error {
			return fn(NewRepositories(database.NewGormDB(tx)))
		})
	}
}

// notFound maps the driver's empty-result error onto the shared sentinel
// so callers never depend on gorm directly.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return err
}
