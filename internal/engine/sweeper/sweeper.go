// Package sweeper purges role grants and org memberships whose validity
// window has closed. Expired rows are already ignored by every decision
// path; the sweep only keeps the association tables from growing without
// bound.
package sweeper

import (
	"time"

	"github.com/robfig/cron"

	"github.com/go-warden/warden/internal/engine/conf"
	"github.com/go-warden/warden/internal/engine/repo"
	"github.com/go-warden/warden/pkg/log"
)

type Sweeper struct {
	userRoleRepo repo.IUserRoleRepository
	userOrgRepo  repo.IUserOrgRepository
	cfg          conf.Sweeper
	c            *cron.Cron
}

func NewSweeper(repos *repo.Repositories, cfg conf.Sweeper) *Sweeper {
	return &Sweeper{
		userRoleRepo: repos.UserRole,
		userOrgRepo:  repos.UserOrg,
		cfg:          cfg,
		c:            cron.New(),
	}
}

// Start schedules the sweep. A no-op when disabled by configuration.
func (s *Sweeper) Start() error {
	if !s.cfg.Enabled {
		log.Info("association sweeper disabled")
		return nil
	}
	if err := s.c.AddFunc(s.cfg.Spec, s.Sweep); err != nil {
		return err
	}
	s.c.Start()
	log.Infof("association sweeper started, spec: %s", s.cfg.Spec)
	return nil
}

func (s *Sweeper) Stop() {
	s.c.Stop()
}

// Sweep runs one purge pass.
func (s *Sweeper) Sweep() {
	now := time.Now()

	roles, err := s.userRoleRepo.DeleteExpired(now)
	if err != nil {
		log.Errorw("failed to purge expired role grants", "error", err)
	}
	orgs, err := s.userOrgRepo.DeleteExpired(now)
	if err != nil {
		log.Errorw("failed to purge expired org memberships", "error", err)
	}

	if roles > 0 || orgs > 0 {
		log.Infow("expired associations purged", "roleGrants", roles, "orgMemberships", orgs)
	}
}
