package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/gin-gonic/gin"

	"github.com/abdullahsadik00/craftconnect/domain"
)

const testModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && keyMatch2(r.obj, p.obj) && regexMatch(r.act, p.act)
`

func newTestEnforcer(t *testing.T) *casbin.Enforcer {
	t.Helper()

	m, err := model.NewModelFromString(testModelText)
	if err != nil {
		t.Fatalf("failed to build model: %v", err)
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		t.Fatalf("failed to build enforcer: %v", err)
	}

	policies := [][]string{
		{"role_PROVIDER", "/providers/me", "PUT"},
		{"role_PROVIDER", "/inquiries", "GET"},
		{"role_CUSTOMER", "/providers/:id/inquiries", "POST"},
		{"role_ADMIN", "/admin/*", "(GET|POST|DELETE)"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			t.Fatalf("failed to add policy: %v", err)
		}
	}
	return e
}

func newRBACRouter(e *casbin.Enforcer, userID, role string) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		if role != "" {
			c.Set("user_role", role)
		}
	})
	r.Use(NewCasbinMW(e).Enforce())
	handle := func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }
	r.PUT("/providers/me", handle)
	r.GET("/inquiries", handle)
	r.POST("/providers/:id/inquiries", handle)
	r.GET("/admin/policies", handle)
	return r
}

func TestCasbinMW_RoleGates(t *testing.T) {
	e := newTestEnforcer(t)

	tests := []struct {
		name     string
		role     string
		method   string
		path     string
		wantCode int
	}{
		{"provider updates own profile", domain.RoleProvider, http.MethodPut, "/providers/me", http.StatusOK},
		{"provider lists inquiries", domain.RoleProvider, http.MethodGet, "/inquiries", http.StatusOK},
		{"customer submits inquiry", domain.RoleCustomer, http.MethodPost, "/providers/7/inquiries", http.StatusOK},
		{"customer cannot update profile", domain.RoleCustomer, http.MethodPut, "/providers/me", http.StatusForbidden},
		{"provider cannot submit inquiry", domain.RoleProvider, http.MethodPost, "/providers/7/inquiries", http.StatusForbidden},
		{"admin reaches policy surface", domain.RoleAdmin, http.MethodGet, "/admin/policies", http.StatusOK},
		{"provider blocked from admin", domain.RoleProvider, http.MethodGet, "/admin/policies", http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRBACRouter(e, "1", tt.role)
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			if w.Code != tt.wantCode {
				t.Errorf("expected %d, got %d", tt.wantCode, w.Code)
			}
		})
	}
}

func TestCasbinMW_MissingIdentity(t *testing.T) {
	e := newTestEnforcer(t)

	router := newRBACRouter(e, "", "")
	req := httptest.NewRequest(http.MethodGet, "/inquiries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without identity, got %d", w.Code)
	}
}
