package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/pkg/helpers"
	"github.com/oksasatya/user-account-service/pkg/validation"
)

// AuthHandler covers registration and the session lifecycle.
type AuthHandler struct {
	Svc     *userapp.Service
	Queries *userapp.QueryService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *userapp.Service, queries *userapp.QueryService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Queries: queries, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,pwd"`
	FirstName   string  `json:"first_name" binding:"required,max=100"`
	LastName    string  `json:"last_name" binding:"required,max=100"`
	Birthdate   string  `json:"birthdate,omitempty"` // YYYY-MM-DD
	PhoneNumber string  `json:"phone_number" binding:"required"`
	Latitude    float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude   float64 `json:"longitude" binding:"min=-180,max=180"`
	AboutMe     string  `json:"about_me,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	var birthdate *time.Time
	if req.Birthdate != "" {
		bd, err := time.Parse("2006-01-02", req.Birthdate)
		if err != nil {
			fail(c, http.StatusBadRequest, "invalid payload", map[string]string{"birthdate": "must be a date in YYYY-MM-DD format"})
			return
		}
		birthdate = &bd
	}

	u, err := h.Svc.Register(c.Request.Context(), userapp.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Birthdate:   birthdate,
		PhoneNumber: req.PhoneNumber,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AboutMe:     req.AboutMe,
	})
	if err != nil {
		fail(c, statusFor(err), "registration failed", errDetails(err))
		return
	}
	ok(c, http.StatusCreated, gin.H{
		"id":    u.ID(),
		"email": u.Email().String(),
		"name":  u.Name().String(),
	}, "registered", nil)
}

// CheckAvailability GET /api/register/availability?email=&phone=
// Answers from the read replica: good enough for the signup form, while the
// unique constraints on the write store stay authoritative.
func (h *AuthHandler) CheckAvailability(c *gin.Context) {
	email := c.Query("email")
	phone := c.Query("phone")
	if email == "" && phone == "" {
		fail(c, http.StatusBadRequest, "email or phone query parameter is required", nil)
		return
	}
	out := gin.H{}
	if email != "" {
		taken, err := h.Queries.EmailTaken(c.Request.Context(), email)
		if err != nil {
			fail(c, statusFor(err), "availability check failed", nil)
			return
		}
		out["email_taken"] = taken
	}
	if phone != "" {
		taken, err := h.Queries.PhoneNumberTaken(c.Request.Context(), phone)
		if err != nil {
			fail(c, statusFor(err), "availability check failed", nil)
			return
		}
		out["phone_taken"] = taken
	}
	ok(c, http.StatusOK, out, "availability", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}

	res, pair, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	ok(c, http.StatusOK, res, "login successful", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Refresh POST /api/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie("refresh_token")
	if err != nil || refresh == "" {
		fail(c, http.StatusUnauthorized, "missing refresh token", nil)
		return
	}
	pair, _, err := h.Svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		fail(c, http.StatusUnauthorized, "invalid refresh token", nil)
		return
	}
	h.Cookies.SetPair(c, pair.AccessToken, pair.AccessTokenExpiry, pair.RefreshToken, pair.RefreshTokenExpiry)
	ok(c, http.StatusOK, map[string]any{"refreshed": true}, "token refreshed", map[string]any{
		"access_expires_at":  pair.AccessTokenExpiry,
		"refresh_expires_at": pair.RefreshTokenExpiry,
	})
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Svc.Logout(c.Request.Context(), c.GetString("userID"))
	h.Cookies.Clear(c)
	ok(c, http.StatusOK, map[string]any{"logged_out": true}, "logged out", nil)
}
