package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-account-service/internal/container"
	handlers "github.com/oksasatya/user-account-service/internal/interface/http"
	"github.com/oksasatya/user-account-service/internal/interface/middleware"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// AdminModule wires the specification-driven search endpoints backed by the
// Elasticsearch replica. Restricted to private networks until a proper role
// model lands.
type AdminModule struct {
	Handler *handlers.AdminHandler
	JWT     *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(middleware.Auth(container.GetRedis(), m.JWT))
	admin.Use(middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), middleware.AllowPrivateIP()))
	{
		admin.GET("/users", m.Handler.ListUsers)
		admin.GET("/users/count", m.Handler.CountUsers)
		admin.GET("/users/:id", m.Handler.GetUser)
		admin.DELETE("/users/:id", m.Handler.HardDeleteUser)
	}
}
