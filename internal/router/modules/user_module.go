package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/user-account-service/internal/container"
	handlers "github.com/oksasatya/user-account-service/internal/interface/http"
	"github.com/oksasatya/user-account-service/internal/interface/middleware"
	"github.com/oksasatya/user-account-service/pkg/helpers"
)

// UserModule wires the authenticated profile routes.
// All routes are registered under the given RouterGroup (usually /api).
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	// Softer per-IP limiter plus a per-user limiter on all protected routes
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.GET("/profile", m.Handler.GetProfile)
		auth.PUT("/profile", m.Handler.UpdateProfile)
		auth.PUT("/profile/phone", m.Handler.UpdatePhoneNumber)
		auth.PUT("/profile/location", m.Handler.UpdateLocation)
		auth.PUT("/profile/password", m.Handler.ChangePassword)
		auth.POST("/profile/image", m.Handler.UploadProfileImage)
		auth.DELETE("/profile/image", m.Handler.RemoveProfileImage)
		auth.DELETE("/profile", m.Handler.DeleteAccount)
	}
}
