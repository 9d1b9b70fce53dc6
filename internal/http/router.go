package httpx

import (
	"github.com/gin-gonic/gin"

	"github.com/abdullahsadik00/craftconnect/internal/http/handlers"
	"github.com/abdullahsadik00/craftconnect/internal/http/middleware"
)

// BuildRouter assembles the gin engine. The general limiter covers every
// route; the auth limiter additionally guards the /auth group with its
// own per-IP budget.
func BuildRouter(
	ah *handlers.AuthHandlers,
	ph *handlers.ProviderHandlers,
	polh *handlers.PolicyHandlers,
	jwtmw *middleware.AuthMW,
	cb *middleware.CasbinMW,
	generalLimiter *middleware.RateLimiter,
	authLimiter *middleware.RateLimiter,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), generalLimiter.Middleware(""))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	auth := r.Group("/auth").Use(authLimiter.Middleware("auth:"))
	auth.POST("/register/email", ah.RegisterEmail)
	auth.POST("/register/phone", ah.SendPhoneOTP)
	auth.POST("/login/email", ah.LoginEmail)
	auth.POST("/login/phone", ah.SendPhoneOTP)
	auth.POST("/verify-otp", ah.VerifyOTP)
	auth.POST("/refresh-token", ah.Refresh)
	auth.POST("/logout", ah.Logout)

	r.GET("/providers", ph.List)
	r.GET("/providers/:id", ph.Get)

	v := r.Group("/").Use(jwtmw.WithJWT(), cb.Enforce())
	v.GET("/auth/me", ah.Me)
	v.POST("/auth/logout-all", ah.LogoutAll)

	v.POST("/providers", ph.Create)
	v.PUT("/providers/me", ph.Update)
	v.POST("/providers/me/portfolio", ph.AddPortfolioItem)
	v.DELETE("/providers/me/portfolio/:itemID", ph.RemovePortfolioItem)
	v.PUT("/providers/me/portfolio/reorder", ph.ReorderPortfolio)

	v.POST("/providers/:id/inquiries", ph.SubmitInquiry)
	v.GET("/inquiries", ph.ListInquiries)
	v.PUT("/inquiries/:id/status", ph.UpdateInquiryStatus)

	adm := r.Group("/admin").Use(jwtmw.WithJWT(), cb.Enforce())
	adm.GET("/policies", polh.List)
	adm.POST("/policies", polh.Add)
	adm.DELETE("/policies", polh.Remove)

	return r
}
