package sweeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
)

type fakeUserRoleRepo struct {
	rows map[string]model.UserRole
}

func (f *fakeUserRoleRepo) CreateUserRole(*model.UserRole) error { return nil }
func (f *fakeUserRoleRepo) GetUserRole(string, string) (*model.UserRole, error) {
	return nil, nil
}
func (f *fakeUserRoleRepo) ListUserRolesByUserId(string) ([]model.UserRole, error) { return nil, nil }
func (f *fakeUserRoleRepo) ListUserRolesByRoleId(string) ([]model.UserRole, error) { return nil, nil }
func (f *fakeUserRoleRepo) DeleteUserRole(string, string) error                    { return nil }
func (f *fakeUserRoleRepo) DeleteUserRoles(string, []string) error                 { return nil }
func (f *fakeUserRoleRepo) UpdateExpire(string, string, time.Time) error           { return nil }

func (f *fakeUserRoleRepo) DeleteExpired(before time.Time) (int64, error) {
	var n int64
	for k, row := range f.rows {
		if row.Expire.Before(before) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

type fakeUserOrgRepo struct {
	rows map[string]model.UserOrg
}

func (f *fakeUserOrgRepo) CreateUserOrg(*model.UserOrg) error { return nil }
func (f *fakeUserOrgRepo) GetUserOrg(string, string) (*model.UserOrg, error) {
	return nil, nil
}
func (f *fakeUserOrgRepo) ListUserOrgsByUserId(string) ([]model.UserOrg, error) { return nil, nil }
func (f *fakeUserOrgRepo) ListUserOrgsByOrgId(string) ([]model.UserOrg, error)  { return nil, nil }
func (f *fakeUserOrgRepo) DeleteUserOrg(string, string) error                   { return nil }
func (f *fakeUserOrgRepo) UpdateExpire(string, string, time.Time) error         { return nil }

func (f *fakeUserOrgRepo) DeleteExpired(before time.Time) (int64, error) {
	var n int64
	for k, row := range f.rows {
		if row.Expire.Before(before) {
			delete(f.rows, k)
			n++
		}
	}
	return n, nil
}

func TestSweepPurgesOnlyExpiredRows(t *testing.T) {
	live := time.Now().Add(time.Hour)
	dead := time.Now().Add(-time.Hour)

	ur := &fakeUserRoleRepo{rows: map[string]model.UserRole{
		"a": {UserId: "u1", RoleId: "r1", Expire: dead},
		"b": {UserId: "u1", RoleId: "r2", Expire: live},
	}}
	uo := &fakeUserOrgRepo{rows: map[string]model.UserOrg{
		"c": {UserId: "u1", OrgId: "o1", Expire: dead},
		"d": {UserId: "u2", OrgId: "o1", Expire: live},
	}}

	s := NewSweeper(&repo.Repositories{UserRole: ur, UserOrg: uo}, conf.Sweeper{Enabled: true})
	s.Sweep()

	assert.Len(t, ur.rows, 1)
	assert.Contains(t, ur.rows, "b")
	assert.Len(t, uo.rows, 1)
	assert.Contains(t, uo.rows, "d")
}

func TestStartDisabled(t *testing.T) {
	s := NewSweeper(&repo.Repositories{}, conf.Sweeper{Enabled: false, Spec: "@daily"})
	assert.NoError(t, s.Start())
	s.Stop()
}
