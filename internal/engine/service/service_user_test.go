package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/go-warden/warden/internal/engine/consts"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/pkg/http/jwt"
)

func newUserService(store *fakeStore) (*UserService, *fakeCache) {
	rc := newFakeCache()
	return NewUserService(store.repositories(), rc, testConf()), rc
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestRegister(t *testing.T) {
	store := newFakeStore()
	us, rc := newUserService(store)

	rep, err := us.Register(&model.RegisterReq{Username: "carol", Password: "secret1", Email: "c@acme.io"}, "")
	require.NoError(t, err)
	require.NotNil(t, rep.User)
	assert.NotEmpty(t, rep.Token)

	// password is stored hashed, never in clear
	stored := store.users[rep.User.UserId]
	assert.NotEqual(t, "secret1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret1")))

	// the session is registered for revocation checks
	ok, err := rc.Exists(t.Context(), consts.UserTokenKey+rep.User.UserId)
	require.NoError(t, err)
	assert.True(t, ok)

	// duplicate username conflicts
	_, err = us.Register(&model.RegisterReq{Username: "carol", Password: "other99"}, "")
	assert.ErrorIs(t, err, errs.ErrUserAlreadyExist)
}

func TestRegisterWithDomainGrantsDefaultRole(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	us, _ := newUserService(store)

	rep, err := us.Register(&model.RegisterReq{Username: "carol", Password: "secret1"}, "dom_1")
	require.NoError(t, err)

	// carol holds the seed member role
	row, ok := store.userRoles[urKey(rep.User.UserId, "role_member")]
	require.True(t, ok)
	assert.Equal(t, model.MemberRoleLevel, row.RoleLevel)

	// the token snapshot reflects the new grant
	auth, err := jwt.ParseToken(rep.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "dom_1", auth.DomainID)
	assert.Equal(t, []string{"role_member"}, auth.RoleIDs)
	assert.Equal(t, model.MemberRoleLevel, auth.RoleLevel)
	assert.False(t, auth.IsAdmin)
}

func TestRegisterUnknownDomain(t *testing.T) {
	store := newFakeStore()
	us, _ := newUserService(store)

	_, err := us.Register(&model.RegisterReq{Username: "carol", Password: "secret1"}, "dom_ghost")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestLogin(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_alice"].Password = hashOf(t, "hunter2")
	store.users["usr_alice"].IsActived = model.UserActived
	store.userRoles[urKey("usr_alice", "role_admin")] = &model.UserRole{
		UserId: "usr_alice", RoleId: "role_admin", RoleLevel: model.AdminRoleLevel,
		Expire: time.Now().Add(time.Hour),
	}
	us, _ := newUserService(store)

	rep, err := us.Login(&model.LoginReq{Username: "alice", Password: "hunter2"}, "dom_1")
	require.NoError(t, err)

	auth, err := jwt.ParseToken(rep.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "usr_alice", auth.ID)
	assert.Equal(t, []string{"role_admin"}, auth.RoleIDs)
	assert.Equal(t, model.AdminRoleLevel, auth.RoleLevel)

	assert.False(t, store.users["usr_alice"].LastLoginedAt.IsZero())
}

func TestLoginFailures(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_alice"].Password = hashOf(t, "hunter2")
	store.users["usr_alice"].IsActived = model.UserActived
	us, _ := newUserService(store)

	_, err := us.Login(&model.LoginReq{Username: "ghost", Password: "x"}, "")
	assert.ErrorIs(t, err, errs.ErrUserNotExist)

	_, err = us.Login(&model.LoginReq{Username: "alice", Password: "wrong"}, "")
	assert.ErrorIs(t, err, errs.ErrIncorrectPassword)

	store.users["usr_alice"].IsActived = model.UserDisabled
	_, err = us.Login(&model.LoginReq{Username: "alice", Password: "hunter2"}, "")
	assert.ErrorIs(t, err, errs.ErrUserDisabled)
}

func TestBuildAuthSnapshot(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.roles["role_other"] = &model.Role{RoleId: "role_other", Level: 5, DomainId: "dom_2"}
	store.orgs["org_2"] = &model.Org{OrgId: "org_2", DomainId: "dom_2"}

	live := time.Now().Add(time.Hour)
	dead := time.Now().Add(-time.Hour)
	store.userRoles[urKey("usr_bob", "role_editor")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_editor", Expire: live}
	store.userRoles[urKey("usr_bob", "role_member")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_member", Expire: live}
	store.userRoles[urKey("usr_bob", "role_admin")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_admin", Expire: dead}
	store.userRoles[urKey("usr_bob", "role_other")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_other", Expire: live}
	store.userOrgs[uoKey("usr_bob", "org_1")] = &model.UserOrg{UserId: "usr_bob", OrgId: "org_1", Expire: live}
	store.userOrgs[uoKey("usr_bob", "org_2")] = &model.UserOrg{UserId: "usr_bob", OrgId: "org_2", Expire: live}
	us, _ := newUserService(store)

	auth, err := us.BuildAuth(store.users["usr_bob"], "dom_1")
	require.NoError(t, err)

	// expired and foreign-domain grants are filtered out; the level is
	// the lowest among what remains
	assert.ElementsMatch(t, []string{"role_editor", "role_member"}, auth.RoleIDs)
	assert.Equal(t, 10, auth.RoleLevel)
	assert.Equal(t, []string{"org_1"}, auth.OrgIDs)
	assert.False(t, auth.IsAdmin)
}

func TestBuildAuthNoRolesDefaultsLevel(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	us, _ := newUserService(store)

	auth, err := us.BuildAuth(store.users["usr_bob"], "dom_1")
	require.NoError(t, err)
	assert.Empty(t, auth.RoleIDs)
	assert.Equal(t, jwt.DefaultRoleLevel, auth.RoleLevel)
}

func TestBuildAuthSysAdmin(t *testing.T) {
	store := newFakeStore()
	store.users["usr_root"] = &model.User{UserId: "usr_root", Username: "root", SysRole: consts.SysRoleAdmin}
	us, _ := newUserService(store)

	auth, err := us.BuildAuth(store.users["usr_root"], "")
	require.NoError(t, err)
	assert.True(t, auth.IsAdmin)
	assert.Empty(t, auth.DomainID)
	assert.Equal(t, jwt.DefaultRoleLevel, auth.RoleLevel)
}

func TestLoginByEmail(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_alice"].Email = "alice@acme.io"
	store.users["usr_alice"].Password = hashOf(t, "hunter2")
	store.users["usr_alice"].IsActived = model.UserActived
	us, _ := newUserService(store)

	rep, err := us.Login(&model.LoginReq{Username: "alice@acme.io", Password: "hunter2"}, "")
	require.NoError(t, err)
	assert.Equal(t, "usr_alice", rep.User.UserId)
}

func TestConnectSwitchesDomain(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.domains["dom_2"] = &model.Domain{DomainId: "dom_2", Name: "beta"}
	store.roles["role_other"] = &model.Role{RoleId: "role_other", Level: 5, DomainId: "dom_2"}
	store.users["usr_bob"].IsActived = model.UserActived
	live := time.Now().Add(time.Hour)
	store.userRoles[urKey("usr_bob", "role_editor")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_editor", Expire: live}
	store.userRoles[urKey("usr_bob", "role_other")] = &model.UserRole{UserId: "usr_bob", RoleId: "role_other", Expire: live}
	us, _ := newUserService(store)

	rep, err := us.Connect("dom_2", memberAuth())
	require.NoError(t, err)

	auth, err := jwt.ParseToken(rep.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "dom_2", auth.DomainID)
	assert.Equal(t, []string{"role_other"}, auth.RoleIDs)
	assert.Equal(t, 5, auth.RoleLevel)
}

func TestConnectEnrollsWhenNoRolesHeld(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_bob"].IsActived = model.UserActived
	us, _ := newUserService(store)

	rep, err := us.Connect("dom_1", &jwt.Auth{ID: "usr_bob"})
	require.NoError(t, err)

	// bob held nothing in dom_1, so connect grants the seed member role
	row, ok := store.userRoles[urKey("usr_bob", "role_member")]
	require.True(t, ok)
	assert.Equal(t, model.MemberRoleLevel, row.RoleLevel)

	auth, err := jwt.ParseToken(rep.Token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, []string{"role_member"}, auth.RoleIDs)
	assert.Equal(t, model.MemberRoleLevel, auth.RoleLevel)
}

func TestGetUserAndListUsers(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	us, _ := newUserService(store)

	// self read is always allowed
	user, err := us.GetUser("usr_bob", &jwt.Auth{ID: "usr_bob"})
	require.NoError(t, err)
	assert.Equal(t, "bob", user.Username)

	// reading someone else requires the system-admin override
	_, err = us.GetUser("usr_alice", memberAuth())
	assert.ErrorIs(t, err, errs.ErrAdminOnly)
	_, err = us.GetUser("usr_alice", sysAdminAuth())
	require.NoError(t, err)
	_, err = us.GetUser("usr_ghost", sysAdminAuth())
	assert.ErrorIs(t, err, errs.ErrUserNotExist)

	_, _, err = us.ListUsers(1, 20, memberAuth())
	assert.ErrorIs(t, err, errs.ErrAdminOnly)
	users, total, err := us.ListUsers(1, 20, sysAdminAuth())
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)
}

func TestLogoutRevokesSession(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_alice"].Password = hashOf(t, "hunter2")
	store.users["usr_alice"].IsActived = model.UserActived
	us, rc := newUserService(store)

	rep, err := us.Login(&model.LoginReq{Username: "alice", Password: "hunter2"}, "")
	require.NoError(t, err)

	key := consts.UserTokenKey + rep.User.UserId
	ok, _ := rc.Exists(t.Context(), key)
	require.True(t, ok)

	require.NoError(t, us.Logout(&jwt.Auth{ID: rep.User.UserId}))
	ok, _ = rc.Exists(t.Context(), key)
	assert.False(t, ok)
}

func TestChangePassword(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_bob"].Password = hashOf(t, "oldpass1")
	us, _ := newUserService(store)

	auth := &jwt.Auth{ID: "usr_bob"}
	err := us.ChangePassword(&model.ChangePasswordReq{OldPassword: "wrong", NewPassword: "newpass1"}, auth)
	assert.ErrorIs(t, err, errs.ErrIncorrectPassword)

	require.NoError(t, us.ChangePassword(&model.ChangePasswordReq{OldPassword: "oldpass1", NewPassword: "newpass1"}, auth))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users["usr_bob"].Password), []byte("newpass1")))
}

func TestResetPassword(t *testing.T) {
	store := newFakeStore()
	seedTenant(store)
	store.users["usr_bob"].Password = hashOf(t, "oldpass1")
	us, _ := newUserService(store)

	// only system admins may reset other accounts
	_, err := us.ResetPassword(&model.ResetPasswordReq{UserId: "usr_bob"}, adminAuth())
	assert.ErrorIs(t, err, errs.ErrAdminOnly)

	generated, err := us.ResetPassword(&model.ResetPasswordReq{UserId: "usr_bob"}, sysAdminAuth())
	require.NoError(t, err)
	assert.NotEmpty(t, generated)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(store.users["usr_bob"].Password), []byte(generated)))
}
