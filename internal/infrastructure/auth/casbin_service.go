package auth

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

// CasbinService wraps the Casbin enforcer backed by the policy table
type CasbinService struct {
	E *casbin.Enforcer
}

// NewCasbinService builds an enforcer from the RBAC model file and a GORM-backed adapter
func NewCasbinService(db *gorm.DB, modelPath string) (*CasbinService, error) {
	adapter, err := gormadapter.NewAdapterByDB(db)
	if err != nil {
		return nil, fmt.Errorf("casbin adapter: %w", err)
	}

	enforcer, err := casbin.NewEnforcer(modelPath, adapter)
	if err != nil {
		return nil, fmt.Errorf("casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("casbin load policy: %w", err)
	}

	return &CasbinService{E: enforcer}, nil
}
