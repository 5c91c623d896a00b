package service

import (
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/jwt"
)

func newDomainService(store *fakeStore) *DomainService {
	return NewDomainService(store.repositories(), store.tx(), testConf())
}

func sysAdminAuth() *jwt.Auth {
	return &jwt.Auth{ID: "usr_root", Username: "root", RoleLevel: jwt.DefaultRoleLevel, IsAdmin: true}
}

func TestCreateDomainBootstrap(t *testing.T) {
	store := newFakeStore()
	store.users["usr_alice"] = &model.User{UserId: "usr_alice", Username: "alice"}
	ds := newDomainService(store)

	domain, err := ds.CreateDomain(&model.CreateDomainReq{
		Name:        "acme",
		Description: "acme corp",
		AdminUserId: "usr_alice",
	}, sysAdminAuth())
	require.NoError(t, err)
	require.NotNil(t, domain)

	// the domain row references the two seed roles
	stored, ok := store.domains[domain.DomainId]
	require.True(t, ok)
	assert.Equal(t, "acme", stored.Name)

	adminRole, ok := store.roles[stored.AdminRoleId]
	require.True(t, ok)
	assert.Equal(t, model.AdminRoleLevel, adminRole.Level)
	assert.Equal(t, domain.DomainId, adminRole.DomainId)
	assert.Equal(t, "admin", adminRole.Name)

	memberRole, ok := store.roles[stored.DefaultRoleId]
	require.True(t, ok)
	assert.Equal(t, model.MemberRoleLevel, memberRole.Level)
	assert.Equal(t, domain.DomainId, memberRole.DomainId)
	assert.Equal(t, "member", memberRole.Name)

	// the admin user holds the admin role for the default window
	grant, ok := store.userRoles[urKey("usr_alice", adminRole.RoleId)]
	require.True(t, ok)
	assert.Equal(t, model.AdminRoleLevel, grant.RoleLevel)
	assert.WithinDuration(t, time.Now().Add(model.GrantExpire), grant.Expire, time.Minute)
}

func TestCreateDomainRollsBackOnFailure(t *testing.T) {
	store := newFakeStore()
	store.users["usr_alice"] = &model.User{UserId: "usr_alice", Username: "alice"}
	store.failOn["CreateDomain"] = errors.New("disk full")
	ds := newDomainService(store)

	_, err := ds.CreateDomain(&model.CreateDomainReq{
		Name:        "acme",
		AdminUserId: "usr_alice",
	}, sysAdminAuth())
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrTransactionFailed)

	// no partial rows survive
	assert.Empty(t, store.domains)
	assert.Empty(t, store.roles)
	assert.Empty(t, store.userRoles)
}

func TestCreateDomainRequiresSysAdmin(t *testing.T) {
	store := newFakeStore()
	store.users["usr_alice"] = &model.User{UserId: "usr_alice"}
	ds := newDomainService(store)

	auth := &jwt.Auth{ID: "usr_alice", DomainID: "dom_1", RoleLevel: model.AdminRoleLevel}
	_, err := ds.CreateDomain(&model.CreateDomainReq{Name: "acme", AdminUserId: "usr_alice"}, auth)
	assert.ErrorIs(t, err, errs.ErrAdminOnly)
}

func TestCreateDomainAdminUserMustExist(t *testing.T) {
	store := newFakeStore()
	ds := newDomainService(store)

	_, err := ds.CreateDomain(&model.CreateDomainReq{Name: "acme", AdminUserId: "usr_ghost"}, sysAdminAuth())
	assert.ErrorIs(t, err, errs.ErrUserNotExist)
}

func TestUpdateDomain(t *testing.T) {
	store := newFakeStore()
	store.domains["dom_1"] = &model.Domain{DomainId: "dom_1", Name: "old"}
	ds := newDomainService(store)

	name := "renamed"
	auth := &jwt.Auth{ID: "usr_a", DomainID: "dom_1", RoleLevel: model.AdminRoleLevel}
	require.NoError(t, ds.UpdateDomain("dom_1", &model.UpdateDomainReq{Name: &name}, auth))
	assert.Equal(t, "renamed", store.domains["dom_1"].Name)

	// a plain member cannot touch the domain
	m := &jwt.Auth{ID: "usr_b", DomainID: "dom_1", RoleLevel: model.MemberRoleLevel}
	assert.ErrorIs(t, ds.UpdateDomain("dom_1", &model.UpdateDomainReq{Name: &name}, m), errs.ErrInsufficientLevel)
}

func TestDeleteDomainSoft(t *testing.T) {
	store := newFakeStore()
	store.domains["dom_1"] = &model.Domain{DomainId: "dom_1", Name: "acme"}
	ds := newDomainService(store)

	require.NoError(t, ds.DeleteDomain("dom_1", sysAdminAuth()))

	// the row remains but reads skip it
	assert.Equal(t, model.Deleted, store.domains["dom_1"].IsDeleted)
	_, err := ds.GetDomain("dom_1", sysAdminAuth())
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestListDomainsAdminOnly(t *testing.T) {
	store := newFakeStore()
	store.domains["dom_1"] = &model.Domain{DomainId: "dom_1"}
	ds := newDomainService(store)

	_, _, err := ds.ListDomains(1, 10, &jwt.Auth{ID: "usr_a", DomainID: "dom_1", RoleLevel: 1})
	assert.ErrorIs(t, err, errs.ErrAdminOnly)

	list, total, err := ds.ListDomains(1, 10, sysAdminAuth())
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}
