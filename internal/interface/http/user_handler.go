package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/internal/domain/entity"
	"github.com/oksasatya/user-account-service/pkg/validation"
)

// UserHandler covers the authenticated user's own profile operations.
type UserHandler struct {
	Svc    *userapp.Service
	Logger *logrus.Logger
}

func NewUserHandler(svc *userapp.Service, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name" binding:"required,max=100"`
	Birthdate string `json:"birthdate,omitempty"`
	AboutMe   string `json:"about_me,omitempty"`
}

type updatePhoneRequest struct {
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type updateLocationRequest struct {
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,pwd"`
}

func profileView(u *entity.User) gin.H {
	var age any
	if a, ok := u.Age(); ok {
		age = a
	}
	return gin.H{
		"id":                 u.ID(),
		"email":              u.Email().String(),
		"first_name":         u.Name().First(),
		"last_name":          u.Name().Last(),
		"phone_number":       u.Phone().String(),
		"latitude":           u.Location().Latitude(),
		"longitude":          u.Location().Longitude(),
		"birthdate":          u.Birthdate(),
		"age":                age,
		"is_adult":           u.IsAdult(),
		"about_me":           u.AboutMe(),
		"profile_image_name": u.ProfileImageName(),
		"created_at":         u.CreatedAt(),
		"updated_at":         u.UpdatedAt(),
		"last_login":         u.LastLogin(),
	}
}

// GetProfile GET /api/profile
func (h *UserHandler) GetProfile(c *gin.Context) {
	u, err := h.Svc.GetProfile(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		fail(c, statusFor(err), "user not found", nil)
		return
	}
	ok(c, http.StatusOK, profileView(u), "profile", nil)
}

// UpdateProfile PUT /api/profile
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
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
	u, err := h.Svc.UpdateProfile(c.Request.Context(), c.GetString("userID"), userapp.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Birthdate: birthdate,
		AboutMe:   req.AboutMe,
	})
	if err != nil {
		fail(c, statusFor(err), "failed to update profile", errDetails(err))
		return
	}
	ok(c, http.StatusOK, profileView(u), "profile updated", nil)
}

// UpdatePhoneNumber PUT /api/profile/phone
func (h *UserHandler) UpdatePhoneNumber(c *gin.Context) {
	var req updatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdatePhoneNumber(c.Request.Context(), c.GetString("userID"), req.PhoneNumber)
	if err != nil {
		fail(c, statusFor(err), "failed to update phone number", errDetails(err))
		return
	}
	ok(c, http.StatusOK, profileView(u), "phone number updated", nil)
}

// UpdateLocation PUT /api/profile/location
func (h *UserHandler) UpdateLocation(c *gin.Context) {
	var req updateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.UpdateLocation(c.Request.Context(), c.GetString("userID"), req.Latitude, req.Longitude)
	if err != nil {
		fail(c, statusFor(err), "failed to update location", errDetails(err))
		return
	}
	ok(c, http.StatusOK, profileView(u), "location updated", nil)
}

// ChangePassword PUT /api/profile/password
func (h *UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Svc.ChangePassword(c.Request.Context(), c.GetString("userID"), req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, statusFor(err), "failed to change password", errDetails(err))
		return
	}
	ok(c, http.StatusOK, map[string]any{"changed": true}, "password changed", nil)
}

// UploadProfileImage POST /api/profile/image (multipart)
func (h *UserHandler) UploadProfileImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		fail(c, http.StatusBadRequest, "missing image file", nil)
		return
	}
	defer func() { _ = file.Close() }()

	url, err := h.Svc.UploadProfileImage(c.Request.Context(), c.GetString("userID"), file, header.Filename, header.Header.Get("Content-Type"))
	if err != nil {
		fail(c, statusFor(err), "failed to upload image", errDetails(err))
		return
	}
	ok(c, http.StatusOK, gin.H{"image_url": url}, "profile image updated", nil)
}

// RemoveProfileImage DELETE /api/profile/image
func (h *UserHandler) RemoveProfileImage(c *gin.Context) {
	if err := h.Svc.RemoveProfileImage(c.Request.Context(), c.GetString("userID")); err != nil {
		fail(c, statusFor(err), "failed to remove image", errDetails(err))
		return
	}
	ok(c, http.StatusOK, map[string]any{"removed": true}, "profile image removed", nil)
}

// DeleteAccount DELETE /api/profile
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	if err := h.Svc.DeleteAccount(c.Request.Context(), c.GetString("userID")); err != nil {
		fail(c, statusFor(err), "failed to delete account", errDetails(err))
		return
	}
	ok(c, http.StatusOK, map[string]any{"deleted": true}, "account deleted", nil)
}
