package app

import (
	"context"
	"log"
	"net/http"

	"github.com/robfig/cron/v3"

	"github.com/abdullahsadik00/craftconnect/internal/config"
	httpx "github.com/abdullahsadik00/craftconnect/internal/http"
	"github.com/abdullahsadik00/craftconnect/internal/http/handlers"
	"github.com/abdullahsadik00/craftconnect/internal/http/middleware"
)

// Run wires the container, seeds policies, starts the cleanup sweeps and
// serves HTTP until the listener fails.
func Run(cfg *config.Config) error {
	c, err := NewContainer(cfg)
	if err != nil {
		return err
	}
	defer c.Close()

	if err := seedPolicies(c); err != nil {
		return err
	}

	sweeper, err := startSweeps(cfg.CleanupSchedule, c)
	if err != nil {
		return err
	}
	defer sweeper.Stop()

	generalLimiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	defer generalLimiter.Stop()
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow)
	defer authLimiter.Stop()

	authH := handlers.NewAuthHandlers(c.AuthSvc)
	provH := handlers.NewProviderHandlers(c.ProviderSvc)
	polH := handlers.NewPolicyHandlers(c.PolicySvc)

	jwtMW := middleware.NewAuthMW(c.TokenSvc)
	casbinMW := middleware.NewCasbinMW(c.Casbin.E)

	r := httpx.BuildRouter(authH, provH, polH, jwtMW, casbinMW, generalLimiter, authLimiter)

	addr := ":" + cfg.Port
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, r)
}

// seedPolicies installs the default role policies on an empty policy table.
func seedPolicies(c *Container) error {
	policies, err := c.Casbin.E.GetPolicy()
	if err != nil {
		return err
	}
	if len(policies) > 0 {
		return nil
	}

	seed := [][]string{
		{"role_ADMIN", "/admin/*", "(GET|POST|PUT|DELETE)"},
		{"role_ADMIN", "/*", "(GET|POST|PUT|DELETE)"},

		{"role_PROVIDER", "/auth/me", "GET"},
		{"role_PROVIDER", "/auth/logout-all", "POST"},
		{"role_PROVIDER", "/providers", "POST"},
		{"role_PROVIDER", "/providers/me", "PUT"},
		{"role_PROVIDER", "/providers/me/portfolio", "POST"},
		{"role_PROVIDER", "/providers/me/portfolio/:itemID", "DELETE"},
		{"role_PROVIDER", "/providers/me/portfolio/reorder", "PUT"},
		{"role_PROVIDER", "/inquiries", "GET"},
		{"role_PROVIDER", "/inquiries/:id/status", "PUT"},

		{"role_CUSTOMER", "/auth/me", "GET"},
		{"role_CUSTOMER", "/auth/logout-all", "POST"},
		{"role_CUSTOMER", "/providers/:id/inquiries", "POST"},
	}
	for _, p := range seed {
		if _, err := c.Casbin.E.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}
	if err := c.Casbin.E.SavePolicy(); err != nil {
		return err
	}
	log.Println("casbin: seeded default policies")
	return nil
}

// startSweeps schedules periodic deletion of expired OTPs and sessions.
func startSweeps(schedule string, c *Container) (*cron.Cron, error) {
	sweeper := cron.New()
	_, err := sweeper.AddFunc(schedule, func() {
		ctx := context.Background()
		if n, err := c.AuthSvc.CleanupExpiredOtps(ctx); err != nil {
			log.Printf("OTP_SWEEP_FAILED: error=%v", err)
		} else if n > 0 {
			log.Printf("OTP_SWEEP: deleted=%d", n)
		}
		if n, err := c.AuthSvc.CleanupExpiredSessions(ctx); err != nil {
			log.Printf("SESSION_SWEEP_FAILED: error=%v", err)
		} else if n > 0 {
			log.Printf("SESSION_SWEEP: deleted=%d", n)
		}
	})
	if err != nil {
		return nil, err
	}
	sweeper.Start()
	return sweeper, nil
}
