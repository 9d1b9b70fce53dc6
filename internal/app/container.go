package app

import (
	"context"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/abdullahsadik00/craftconnect/domain"
	"github.com/abdullahsadik00/craftconnect/internal/config"
	"github.com/abdullahsadik00/craftconnect/internal/infrastructure/auth"
	"github.com/abdullahsadik00/craftconnect/internal/infrastructure/database"
	"github.com/abdullahsadik00/craftconnect/internal/infrastructure/notifications"
	"github.com/abdullahsadik00/craftconnect/internal/infrastructure/repositories"
	"github.com/abdullahsadik00/craftconnect/internal/services"
)

// Container holds all dependencies
type Container struct {
	Config *config.Config

	DB          *gorm.DB
	RedisClient *redis.Client
	Casbin      *auth.CasbinService

	UserRepo     domain.UserRepository
	OtpRepo      domain.OtpRepository
	SessionRepo  domain.SessionRepository
	ProviderRepo domain.ProviderRepository
	InquiryRepo  domain.InquiryRepository

	PasswordSvc     domain.PasswordService
	TokenSvc        domain.TokenService
	NotificationSvc domain.NotificationService
	OTPSvc          domain.OtpService
	AuthSvc         domain.AuthService
	ProviderSvc     domain.ProviderService
	PolicySvc       domain.PolicyService
}

// NewContainer creates and initializes all dependencies
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(); err != nil {
		return nil, err
	}
	if err := c.initRedis(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()

	return c, nil
}

func (c *Container) initDatabase() error {
	db, err := database.Open(c.Config.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}

	cas, err := auth.NewCasbinService(db, c.Config.CasbinModelPath)
	if err != nil {
		return err
	}

	c.DB = db
	c.Casbin = cas
	return nil
}

func (c *Container) initRedis() error {
	rdb := database.NewRedis(c.Config.RedisAddr, c.Config.RedisPassword, c.Config.RedisDB)
	if err := rdb.Ping(context.Background()); err != nil {
		return err
	}
	c.RedisClient = rdb.Client
	return nil
}

func (c *Container) initRepositories() {
	c.UserRepo = repositories.NewUserRepository(c.DB)
	c.OtpRepo = repositories.NewOtpRepository(c.DB)
	c.SessionRepo = repositories.NewSessionRepository(c.RedisClient)
	c.ProviderRepo = repositories.NewProviderRepository(c.DB)
	c.InquiryRepo = repositories.NewInquiryRepository(c.DB)
}

func (c *Container) initServices() {
	c.PasswordSvc = auth.NewPasswordService(c.Config.BcryptCost)
	c.TokenSvc = auth.NewJWTService(
		c.Config.AccessSecret,
		c.Config.RefreshSecret,
		c.Config.JWTIssuer,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.NotificationSvc = notifications.NewTwilioService(
		c.Config.TwilioSID,
		c.Config.TwilioToken,
		c.Config.TwilioFrom,
	)

	c.OTPSvc = services.NewOTPService(c.OtpRepo, c.NotificationSvc, c.RedisClient, services.OTPConfig{
		Length:       c.Config.OTPLength,
		TTL:          c.Config.OTPTTL,
		MaxAttempts:  c.Config.OTPMaxAttempts,
		ResendWindow: c.Config.OTPResendWindow,
	})

	c.AuthSvc = services.NewAuthService(
		c.UserRepo,
		c.SessionRepo,
		c.OtpRepo,
		c.ProviderRepo,
		c.PasswordSvc,
		c.TokenSvc,
		c.OTPSvc,
		c.Config.AccessTTL,
		c.Config.RefreshTTL,
	)
	c.ProviderSvc = services.NewProviderService(c.ProviderRepo, c.InquiryRepo)
	c.PolicySvc = services.NewPolicyService(c.Casbin.E)
}

// Close closes all connections
func (c *Container) Close() error {
	if c.RedisClient != nil {
		c.RedisClient.Close()
	}

	if c.DB != nil {
		sqlDB, err := c.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}
