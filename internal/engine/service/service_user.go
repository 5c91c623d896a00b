package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/go-warden/warden/internal/engine/authz"
	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/consts"
	"github.com/go-warden/warden/internal/engine/errs"
	"github.com/go-warden/warden/internal/engine/model"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/cache"
	"github.com/go-warden/warden/pkg/http/jwt"
	"github.com/go-warden/warden/pkg/id"
	"github.com/go-warden/warden/pkg/log"
)

type UserService struct {
	userRepo     repo.IUserRepository
	roleRepo     repo.IRoleRepository
	orgRepo      repo.IOrgRepository
	domainRepo   repo.IDomainRepository
	userRoleRepo repo.IUserRoleRepository
	userOrgRepo  repo.IUserOrgRepository
	rc           cache.ICache
	cfg          *conf.AppConfig
}

func NewUserService(repos *repo.Repositories, rc cache.ICache, cfg *conf.AppConfig) *UserService {
	return &UserService{
		userRepo:     repos.User,
		roleRepo:     repos.Role,
		orgRepo:      repos.Org,
		domainRepo:   repos.Domain,
		userRoleRepo: repos.UserRole,
		userOrgRepo:  repos.UserOrg,
		rc:           rc,
		cfg:          cfg,
	}
}

// Register creates an account. When fromDomainId names a domain, the new
// user receives that domain's default member role and logs straight in
// there.
func (us *UserService) Register(req *model.RegisterReq, fromDomainId string) (*model.LoginRep, error) {
	if existing, err := us.userRepo.GetUserByUsername(req.Username); err == nil && existing != nil {
		return nil, errs.ErrUserAlreadyExist
	} else if err != nil && !errors.Is(err, errs.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		UserId:    id.GetUUID(),
		Username:  req.Username,
		Password:  string(hash),
		Email:     req.Email,
		SysRole:   consts.SysRoleUser,
		IsActived: model.UserActived,
	}
	if err := us.userRepo.CreateUser(user); err != nil {
		log.Errorw("failed to create user", "username", req.Username, "error", err)
		return nil, err
	}

	if fromDomainId != "" {
		if err := us.grantDefaultRole(user.UserId, fromDomainId); err != nil {
			return nil, err
		}
	}

	log.Infow("user registered", "userId", user.UserId, "username", user.Username, "from", fromDomainId)
	return us.issueSession(user, fromDomainId)
}

// Login authenticates by username or email and issues a session scoped
// to fromDomainId when present.
func (us *UserService) Login(req *model.LoginReq, fromDomainId string) (*model.LoginRep, error) {
	user, err := us.userRepo.GetUserByAccount(req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotExist
		}
		return nil, err
	}
	if user.IsActived != model.UserActived {
		return nil, errs.ErrUserDisabled
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, errs.ErrIncorrectPassword
	}

	if err := us.userRepo.UpdateLastLogin(user.UserId, time.Now()); err != nil {
		log.Warnf("failed to record last login for %s: %v", user.UserId, err)
	}

	log.Infow("user logged in", "userId", user.UserId, "from", fromDomainId)
	return us.issueSession(user, fromDomainId)
}

// Connect re-issues the caller's session against another domain. A
// caller holding no live role there is enrolled with the domain's
// default member role first, so the fresh token always carries a
// membership.
func (us *UserService) Connect(domainId string, auth *jwt.Auth) (*model.LoginRep, error) {
	user, err := us.userRepo.GetUser(auth.ID)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotExist
		}
		return nil, err
	}
	if user.IsActived != model.UserActived {
		return nil, errs.ErrUserDisabled
	}

	if domainId != "" && user.SysRole != consts.SysRoleAdmin {
		snapshot, err := us.BuildAuth(user, domainId)
		if err != nil {
			return nil, err
		}
		if len(snapshot.RoleIDs) == 0 {
			if err := us.grantDefaultRole(user.UserId, domainId); err != nil {
				return nil, err
			}
			log.Infow("user enrolled on connect", "userId", user.UserId, "domainId", domainId)
		}
	}

	return us.issueSession(user, domainId)
}

// Logout revokes the session by dropping its redis entry.
func (us *UserService) Logout(auth *jwt.Auth) error {
	return us.rc.Del(context.Background(), consts.UserTokenKey+auth.ID)
}

func (us *UserService) Me(auth *jwt.Auth) (*model.User, error) {
	return us.userRepo.GetUser(auth.ID)
}

// GetUser returns a profile. Callers may read themselves; anyone else
// requires the system-admin override.
func (us *UserService) GetUser(userId string, auth *jwt.Auth) (*model.User, error) {
	if userId != auth.ID {
		if err := authz.CanAdminister(auth); err != nil {
			return nil, err
		}
	}
	user, err := us.userRepo.GetUser(userId)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return nil, errs.ErrUserNotExist
		}
		return nil, err
	}
	return user, nil
}

// ListUsers is cross-tenant, system admins only.
func (us *UserService) ListUsers(pageNum, pageSize int, auth *jwt.Auth) ([]model.User, int64, error) {
	if err := authz.CanAdminister(auth); err != nil {
		return nil, 0, err
	}
	return us.userRepo.ListUsers(pageNum, pageSize)
}

func (us *UserService) UpdateUser(req *model.UpdateUserReq, auth *jwt.Auth) error {
	updates := map[string]any{}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Avatar != nil {
		updates["avatar"] = *req.Avatar
	}
	if req.Memo != nil {
		updates["memo"] = *req.Memo
	}
	if len(updates) == 0 {
		return nil
	}
	return us.userRepo.UpdateUser(auth.ID, updates)
}

// SetAvatar stores the uploaded avatar's object URL on the profile.
func (us *UserService) SetAvatar(userId, url string) error {
	return us.userRepo.UpdateUser(userId, map[string]any{"avatar": url})
}

// ChangePassword replaces the caller's own password after verifying the
// current one.
func (us *UserService) ChangePassword(req *model.ChangePasswordReq, auth *jwt.Auth) error {
	user, err := us.userRepo.GetUser(auth.ID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return errs.ErrIncorrectPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := us.userRepo.UpdateUser(auth.ID, map[string]any{"password": string(hash)}); err != nil {
		log.Errorw("failed to change password", "userId", auth.ID, "error", err)
		return err
	}
	log.Infow("password changed", "userId", auth.ID)
	return nil
}

// ResetPassword sets a generated password on another account, system
// admins only. The generated password is returned once and never stored
// in clear.
func (us *UserService) ResetPassword(req *model.ResetPasswordReq, auth *jwt.Auth) (string, error) {
	if err := authz.CanAdminister(auth); err != nil {
		return "", err
	}
	if _, err := us.userRepo.GetUser(req.UserId); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return "", errs.ErrUserNotExist
		}
		return "", err
	}

	generated := id.ShortId()
	hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	if err := us.userRepo.UpdateUser(req.UserId, map[string]any{"password": string(hash)}); err != nil {
		log.Errorw("failed to reset password", "userId", req.UserId, "error", err)
		return "", err
	}
	log.Infow("password reset", "userId", req.UserId, "by", auth.ID)
	return generated, nil
}

// issueSession builds the snapshot for the domain, signs the token and
// registers it in redis for revocation checks.
func (us *UserService) issueSession(user *model.User, domainId string) (*model.LoginRep, error) {
	auth, err := us.BuildAuth(user, domainId)
	if err != nil {
		return nil, err
	}

	expire := us.cfg.Http.Auth.Expire()
	token, err := jwt.GenToken(*auth, []byte(us.cfg.Http.Auth.SecretKey), expire)
	if err != nil {
		return nil, err
	}
	if err := us.rc.Set(context.Background(), consts.UserTokenKey+user.UserId, token, expire); err != nil {
		log.Errorw("failed to cache session token", "userId", user.UserId, "error", err)
		return nil, err
	}

	return &model.LoginRep{Token: token, User: user}, nil
}

// BuildAuth assembles the denormalized snapshot: the user's live roles
// and orgs within the domain, the lowest role level held there, and the
// system-admin flag. Expired grants are ignored.
func (us *UserService) BuildAuth(user *model.User, domainId string) (*jwt.Auth, error) {
	auth := &jwt.Auth{
		ID:        user.UserId,
		Username:  user.Username,
		DomainID:  domainId,
		OrgIDs:    []string{},
		RoleIDs:   []string{},
		RoleLevel: jwt.DefaultRoleLevel,
		IsAdmin:   user.SysRole == consts.SysRoleAdmin,
	}
	if domainId == "" {
		return auth, nil
	}

	if _, err := us.domainRepo.GetDomain(domainId); err != nil {
		return nil, err
	}

	now := time.Now()

	roleRows, err := us.userRoleRepo.ListUserRolesByUserId(user.UserId)
	if err != nil {
		return nil, err
	}
	liveIds := make([]string, 0, len(roleRows))
	for _, r := range roleRows {
		if r.Expire.After(now) {
			liveIds = append(liveIds, r.RoleId)
		}
	}
	roles, err := us.roleRepo.GetRolesByRoleIds(liveIds)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		if r.DomainId != domainId {
			continue
		}
		auth.RoleIDs = append(auth.RoleIDs, r.RoleId)
		if r.Level < auth.RoleLevel {
			auth.RoleLevel = r.Level
		}
	}

	orgRows, err := us.userOrgRepo.ListUserOrgsByUserId(user.UserId)
	if err != nil {
		return nil, err
	}
	liveOrgIds := make([]string, 0, len(orgRows))
	for _, o := range orgRows {
		if o.Expire.After(now) {
			liveOrgIds = append(liveOrgIds, o.OrgId)
		}
	}
	orgs, err := us.orgRepo.GetOrgsByOrgIds(liveOrgIds)
	if err != nil {
		return nil, err
	}
	for _, o := range orgs {
		if o.DomainId == domainId {
			auth.OrgIDs = append(auth.OrgIDs, o.OrgId)
		}
	}

	return auth, nil
}

// grantDefaultRole gives a fresh account the domain's seed member role.
func (us *UserService) grantDefaultRole(userId, domainId string) error {
	domain, err := us.domainRepo.GetDomain(domainId)
	if err != nil {
		return err
	}
	role, err := us.roleRepo.GetRole(domain.DefaultRoleId)
	if err != nil {
		return err
	}
	return us.userRoleRepo.CreateUserRole(&model.UserRole{
		UserId:    userId,
		RoleId:    role.RoleId,
		RoleLevel: role.Level,
		Expire:    time.Now().Add(model.GrantExpire),
	})
}
