package service

import (
	"context"
	"time"

	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
)

// fakeStore is an in-memory entity store. The fake Tx snapshots it and
// restores the snapshot when the callback fails, which mirrors rollback
// closely enough to test atomic workflows.
type fakeStore struct {
	domains   map[string]*model.Domain
	roles     map[string]*model.Role
	perms     map[string]*model.Perm
	orgs      map[string]*model.Org
	users     map[string]*model.User
	userRoles map[string]*model.UserRole // key userId|roleId
	userOrgs  map[string]*model.UserOrg  // key userId|orgId
	rolePerms map[string]*model.RolePerm // key roleId|permId

	failOn map[string]error // method name -> injected error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		domains:   map[string]*model.Domain{},
		roles:     map[string]*model.Role{},
		perms:     map[string]*model.Perm{},
		orgs:      map[string]*model.Org{},
		users:     map[string]*model.User{},
		userRoles: map[string]*model.UserRole{},
		userOrgs:  map[string]*model.UserOrg{},
		rolePerms: map[string]*model.RolePerm{},
		failOn:    map[string]error{},
	}
}

func (s *fakeStore) fail(method string) error {
	if err, ok := s.failOn[method]; ok {
		return err
	}
	return nil
}

func cloneMap[V any](src map[string]*V) map[string]*V {
	dst := make(map[string]*V, len(src))
	for k, v := range src {
		c := *v
		dst[k] = &c
	}
	return dst
}

func (s *fakeStore) snapshot() *fakeStore {
	return &fakeStore{
		domains:   cloneMap(s.domains),
		roles:     cloneMap(s.roles),
		perms:     cloneMap(s.perms),
		orgs:      cloneMap(s.orgs),
		users:     cloneMap(s.users),
		userRoles: cloneMap(s.userRoles),
		userOrgs:  cloneMap(s.userOrgs),
		rolePerms: cloneMap(s.rolePerms),
		failOn:    s.failOn,
	}
}

func (s *fakeStore) restore(snap *fakeStore) {
	s.domains = snap.domains
	s.roles = snap.roles
	s.perms = snap.perms
	s.orgs = snap.orgs
	s.users = snap.users
	s.userRoles = snap.userRoles
	s.userOrgs = snap.userOrgs
	s.rolePerms = snap.rolePerms
}

func (s *fakeStore) repositories() *repo.Repositories {
	return &repo.Repositories{
		Domain:   &fakeDomainRepo{s},
		Role:     &fakeRoleRepo{s},
		Perm:     &fakePermRepo{s},
		Org:      &fakeOrgRepo{s},
		User:     &fakeUserRepo{s},
		UserRole: &fakeUserRoleRepo{s},
		UserOrg:  &fakeUserOrgRepo{s},
		RolePerm: &fakeRolePermRepo{s},
	}
}

func (s *fakeStore) tx() repo.Tx {
	return func(fn func(r *repo.Repositories) error) error {
		snap := s.snapshot()
		if err := fn(s.repositories()); err != nil {
			s.restore(snap)
			return err
		}
		return nil
	}
}

func testConf() *conf.AppConfig {
	cfg := &conf.AppConfig{}
	cfg.Domain.AdminRoleName = "admin"
	cfg.Domain.CommonRoleName = "member"
	cfg.Http.Auth.SecretKey = "test-secret"
	return cfg
}

// --- domain ---

type fakeDomainRepo struct{ s *fakeStore }

func (f *fakeDomainRepo) CreateDomain(d *model.Domain) error {
	if err := f.s.fail("CreateDomain"); err != nil {
		return err
	}
	c := *d
	f.s.domains[d.DomainId] = &c
	return nil
}

func (f *fakeDomainRepo) GetDomain(domainId string) (*model.Domain, error) {
	d, ok := f.s.domains[domainId]
	if !ok || d.IsDeleted == model.Deleted {
		return nil, errs.ErrNotFound
	}
	c := *d
	return &c, nil
}

func (f *fakeDomainRepo) ListDomains(pageNum, pageSize int) ([]model.Domain, int64, error) {
	var out []model.Domain
	for _, d := range f.s.domains {
		if d.IsDeleted == model.NotDeleted {
			out = append(out, *d)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeDomainRepo) UpdateDomain(domainId string, updates map[string]any) error {
	d, ok := f.s.domains[domainId]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		d.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		d.Description = v.(string)
	}
	return nil
}

func (f *fakeDomainRepo) DeleteDomain(domainId string) error {
	if d, ok := f.s.domains[domainId]; ok {
		d.IsDeleted = model.Deleted
	}
	return nil
}

// --- role ---

type fakeRoleRepo struct{ s *fakeStore }

func (f *fakeRoleRepo) CreateRole(r *model.Role) error {
	if err := f.s.fail("CreateRole"); err != nil {
		return err
	}
	c := *r
	f.s.roles[r.RoleId] = &c
	return nil
}

func (f *fakeRoleRepo) GetRole(roleId string) (*model.Role, error) {
	r, ok := f.s.roles[roleId]
	if !ok || r.IsDeleted == model.Deleted {
		return nil, errs.ErrNotFound
	}
	c := *r
	return &c, nil
}

func (f *fakeRoleRepo) GetRoleByName(domainId, name string) (*model.Role, error) {
	for _, r := range f.s.roles {
		if r.DomainId == domainId && r.Name == name && r.IsDeleted == model.NotDeleted {
			c := *r
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeRoleRepo) GetRolesByRoleIds(roleIds []string) ([]model.Role, error) {
	out := []model.Role{}
	for _, id := range roleIds {
		if r, ok := f.s.roles[id]; ok && r.IsDeleted == model.NotDeleted {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeRoleRepo) ListRoles(domainId string, pageNum, pageSize int) ([]model.Role, int64, error) {
	out := []model.Role{}
	for _, r := range f.s.roles {
		if r.DomainId == domainId && r.IsDeleted == model.NotDeleted {
			out = append(out, *r)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeRoleRepo) UpdateRole(roleId string, updates map[string]any) error {
	r, ok := f.s.roles[roleId]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		r.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		r.Description = v.(string)
	}
	if v, ok := updates["value"]; ok {
		r.Value = v.(string)
	}
	if v, ok := updates["level"]; ok {
		r.Level = v.(int)
	}
	return nil
}

func (f *fakeRoleRepo) DeleteRole(roleId string) error {
	if r, ok := f.s.roles[roleId]; ok {
		r.IsDeleted = model.Deleted
	}
	return nil
}

// --- perm ---

type fakePermRepo struct{ s *fakeStore }

func (f *fakePermRepo) CreatePerm(p *model.Perm) error {
	c := *p
	f.s.perms[p.PermId] = &c
	return nil
}

func (f *fakePermRepo) GetPerm(permId string) (*model.Perm, error) {
	p, ok := f.s.perms[permId]
	if !ok || p.IsDeleted == model.Deleted {
		return nil, errs.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (f *fakePermRepo) GetPermByName(domainId, name string) (*model.Perm, error) {
	for _, p := range f.s.perms {
		if p.DomainId == domainId && p.Name == name && p.IsDeleted == model.NotDeleted {
			c := *p
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakePermRepo) GetPermsByPermIds(permIds []string) ([]model.Perm, error) {
	out := []model.Perm{}
	for _, id := range permIds {
		if p, ok := f.s.perms[id]; ok && p.IsDeleted == model.NotDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePermRepo) ListPerms(domainId string, pageNum, pageSize int) ([]model.Perm, int64, error) {
	out := []model.Perm{}
	for _, p := range f.s.perms {
		if p.DomainId == domainId && p.IsDeleted == model.NotDeleted {
			out = append(out, *p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePermRepo) UpdatePerm(permId string, updates map[string]any) error {
	p, ok := f.s.perms[permId]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		p.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		p.Description = v.(string)
	}
	if v, ok := updates["value"]; ok {
		p.Value = v.(string)
	}
	return nil
}

func (f *fakePermRepo) DeletePerm(permId string) error {
	if p, ok := f.s.perms[permId]; ok {
		p.IsDeleted = model.Deleted
	}
	return nil
}

// --- org ---

type fakeOrgRepo struct{ s *fakeStore }

func (f *fakeOrgRepo) CreateOrg(o *model.Org) error {
	c := *o
	f.s.orgs[o.OrgId] = &c
	return nil
}

func (f *fakeOrgRepo) GetOrg(orgId string) (*model.Org, error) {
	o, ok := f.s.orgs[orgId]
	if !ok || o.IsDeleted == model.Deleted {
		return nil, errs.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (f *fakeOrgRepo) GetOrgByName(domainId, name string) (*model.Org, error) {
	for _, o := range f.s.orgs {
		if o.DomainId == domainId && o.Name == name && o.IsDeleted == model.NotDeleted {
			c := *o
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeOrgRepo) GetOrgsByOrgIds(orgIds []string) ([]model.Org, error) {
	out := []model.Org{}
	for _, id := range orgIds {
		if o, ok := f.s.orgs[id]; ok && o.IsDeleted == model.NotDeleted {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (f *fakeOrgRepo) ListOrgs(domainId string, pageNum, pageSize int) ([]model.Org, int64, error) {
	out := []model.Org{}
	for _, o := range f.s.orgs {
		if o.DomainId == domainId && o.IsDeleted == model.NotDeleted {
			out = append(out, *o)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeOrgRepo) UpdateOrg(orgId string, updates map[string]any) error {
	o, ok := f.s.orgs[orgId]
	if !ok {
		return nil
	}
	if v, ok := updates["name"]; ok {
		o.Name = v.(string)
	}
	if v, ok := updates["description"]; ok {
		o.Description = v.(string)
	}
	return nil
}

func (f *fakeOrgRepo) DeleteOrg(orgId string) error {
	if o, ok := f.s.orgs[orgId]; ok {
		o.IsDeleted = model.Deleted
	}
	return nil
}

// --- user ---

type fakeUserRepo struct{ s *fakeStore }

func (f *fakeUserRepo) CreateUser(u *model.User) error {
	c := *u
	f.s.users[u.UserId] = &c
	return nil
}

func (f *fakeUserRepo) GetUser(userId string) (*model.User, error) {
	u, ok := f.s.users[userId]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *u
	return &c, nil
}

func (f *fakeUserRepo) GetUserByUsername(username string) (*model.User, error) {
	for _, u := range f.s.users {
		if u.Username == username {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) GetUserByAccount(account string) (*model.User, error) {
	for _, u := range f.s.users {
		if u.Username == account || (u.Email != "" && u.Email == account) {
			c := *u
			return &c, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeUserRepo) ListUsers(pageNum, pageSize int) ([]model.User, int64, error) {
	out := []model.User{}
	for _, u := range f.s.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) UpdateUser(userId string, updates map[string]any) error {
	u, ok := f.s.users[userId]
	if !ok {
		return nil
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["avatar"]; ok {
		u.Avatar = v.(string)
	}
	if v, ok := updates["memo"]; ok {
		u.Memo = v.(string)
	}
	if v, ok := updates["password"]; ok {
		u.Password = v.(string)
	}
	return nil
}

func (f *fakeUserRepo) UpdateLastLogin(userId string, at time.Time) error {
	if u, ok := f.s.users[userId]; ok {
		u.LastLoginedAt = at
	}
	return nil
}

func (f *fakeUserRepo) DisableUser(userId string) error {
	if u, ok := f.s.users[userId]; ok {
		u.IsActived = model.UserDisabled
	}
	return nil
}

// --- user role ---

type fakeUserRoleRepo struct{ s *fakeStore }

func urKey(userId, roleId string) string { return userId + "|" + roleId }

func (f *fakeUserRoleRepo) CreateUserRole(row *model.UserRole) error {
	if err := f.s.fail("CreateUserRole"); err != nil {
		return err
	}
	c := *row
	f.s.userRoles[urKey(row.UserId, row.RoleId)] = &c
	return nil
}

func (f *fakeUserRoleRepo) GetUserRole(userId, roleId string) (*model.UserRole, error) {
	row, ok := f.s.userRoles[urKey(userId, roleId)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *row
	return &c, nil
}

func (f *fakeUserRoleRepo) ListUserRolesByUserId(userId string) ([]model.UserRole, error) {
	out := []model.UserRole{}
	for _, row := range f.s.userRoles {
		if row.UserId == userId {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeUserRoleRepo) ListUserRolesByRoleId(roleId string) ([]model.UserRole, error) {
	out := []model.UserRole{}
	for _, row := range f.s.userRoles {
		if row.RoleId == roleId {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeUserRoleRepo) DeleteUserRole(userId, roleId string) error {
	delete(f.s.userRoles, urKey(userId, roleId))
	return nil
}

func (f *fakeUserRoleRepo) DeleteUserRoles(userId string, roleIds []string) error {
	for _, roleId := range roleIds {
		delete(f.s.userRoles, urKey(userId, roleId))
	}
	return nil
}

func (f *fakeUserRoleRepo) UpdateExpire(userId, roleId string, expire time.Time) error {
	if row, ok := f.s.userRoles[urKey(userId, roleId)]; ok {
		row.Expire = expire
	}
	return nil
}

func (f *fakeUserRoleRepo) DeleteExpired(before time.Time) (int64, error) {
	var n int64
	for k, row := range f.s.userRoles {
		if row.Expire.Before(before) {
			delete(f.s.userRoles, k)
			n++
		}
	}
	return n, nil
}

// --- user org ---

type fakeUserOrgRepo struct{ s *fakeStore }

func uoKey(userId, orgId string) string { return userId + "|" + orgId }

func (f *fakeUserOrgRepo) CreateUserOrg(row *model.UserOrg) error {
	if err := f.s.fail("CreateUserOrg"); err != nil {
		return err
	}
	c := *row
	f.s.userOrgs[uoKey(row.UserId, row.OrgId)] = &c
	return nil
}

func (f *fakeUserOrgRepo) GetUserOrg(userId, orgId string) (*model.UserOrg, error) {
	row, ok := f.s.userOrgs[uoKey(userId, orgId)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *row
	return &c, nil
}

func (f *fakeUserOrgRepo) ListUserOrgsByUserId(userId string) ([]model.UserOrg, error) {
	out := []model.UserOrg{}
	for _, row := range f.s.userOrgs {
		if row.UserId == userId {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeUserOrgRepo) ListUserOrgsByOrgId(orgId string) ([]model.UserOrg, error) {
	out := []model.UserOrg{}
	for _, row := range f.s.userOrgs {
		if row.OrgId == orgId {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeUserOrgRepo) DeleteUserOrg(userId, orgId string) error {
	delete(f.s.userOrgs, uoKey(userId, orgId))
	return nil
}

func (f *fakeUserOrgRepo) UpdateExpire(userId, orgId string, expire time.Time) error {
	if row, ok := f.s.userOrgs[uoKey(userId, orgId)]; ok {
		row.Expire = expire
	}
	return nil
}

func (f *fakeUserOrgRepo) DeleteExpired(before time.Time) (int64, error) {
	var n int64
	for k, row := range f.s.userOrgs {
		if row.Expire.Before(before) {
			delete(f.s.userOrgs, k)
			n++
		}
	}
	return n, nil
}

// --- role perm ---

type fakeRolePermRepo struct{ s *fakeStore }

func rpKey(roleId, permId string) string { return roleId + "|" + permId }

func (f *fakeRolePermRepo) CreateRolePerm(row *model.RolePerm) error {
	c := *row
	f.s.rolePerms[rpKey(row.RoleId, row.PermId)] = &c
	return nil
}

func (f *fakeRolePermRepo) GetRolePerm(roleId, permId string) (*model.RolePerm, error) {
	row, ok := f.s.rolePerms[rpKey(roleId, permId)]
	if !ok {
		return nil, errs.ErrNotFound
	}
	c := *row
	return &c, nil
}

func (f *fakeRolePermRepo) ListRolePermsByRoleId(roleId string) ([]model.RolePerm, error) {
	out := []model.RolePerm{}
	for _, row := range f.s.rolePerms {
		if row.RoleId == roleId {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRolePermRepo) ListRolePerms(roleId string, permIds []string) ([]model.RolePerm, error) {
	out := []model.RolePerm{}
	for _, permId := range permIds {
		if row, ok := f.s.rolePerms[rpKey(roleId, permId)]; ok {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (f *fakeRolePermRepo) DeleteRolePerm(roleId, permId string) error {
	delete(f.s.rolePerms, rpKey(roleId, permId))
	return nil
}

// fakeCache is an in-memory cache.ICache.
type fakeCache struct {
	data map[string]string
	ttl  map[string]time.Duration
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string]string{}, ttl: map[string]time.Duration{}}
}

func (f *fakeCache) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", errs.ErrNotFound
	}
	return v, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	f.data[key] = value.(string)
	f.ttl[key] = expiration
	return nil
}

func (f *fakeCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
		delete(f.ttl, k)
	}
	return nil
}

func (f *fakeCache) Exists(_ context.Context, key string) (bool, error) {
	_, ok := f.data[key]
	return ok, nil
}

func (f *fakeCache) TTL(_ context.Context, key string) (time.Duration, error) {
	return f.ttl[key], nil
}

func (f *fakeCache) Expire(_ context.Context, key string, expiration time.Duration) error {
	f.ttl[key] = expiration
	return nil
}
