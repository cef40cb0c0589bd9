package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	userapp "github.com/oksasatya/user-account-service/internal/application"
	"github.com/oksasatya/user-account-service/internal/domain/pagination"
)

// AdminHandler exposes specification-driven queries over the read replica
// plus the admin-only write paths.
type AdminHandler struct {
	Svc     *userapp.Service
	Queries *userapp.QueryService
	Logger  *logrus.Logger
}

func NewAdminHandler(svc *userapp.Service, queries *userapp.QueryService, logger *logrus.Logger) *AdminHandler {
	return &AdminHandler{Svc: svc, Queries: queries, Logger: logger}
}

func parseFilter(c *gin.Context) userapp.SearchFilter {
	f := userapp.SearchFilter{
		Query:           c.Query("q"),
		AdultsOnly:      c.Query("adults_only") == "true",
		CompleteProfile: c.Query("complete_profile") == "true",
		IncludeDeleted:  c.Query("include_deleted") == "true",
	}
	f.MinAge, _ = strconv.Atoi(c.DefaultQuery("min_age", "0"))
	f.MaxAge, _ = strconv.Atoi(c.DefaultQuery("max_age", "0"))
	if latStr, lonStr := c.Query("near_lat"), c.Query("near_lon"); latStr != "" && lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr == nil && lonErr == nil {
			f.NearLatitude = &lat
			f.NearLongitude = &lon
			f.RadiusKm, _ = strconv.ParseFloat(c.DefaultQuery("radius_km", "10"), 64)
		}
	}
	return f
}

func parsePagination(c *gin.Context) (pagination.Params, error) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return pagination.NewParams(page, size, c.Query("sort_by"), c.DefaultQuery("sort_dir", "asc"))
}

// ListUsers GET /api/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	params, err := parsePagination(c)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid pagination", errDetails(err))
		return
	}
	result, err := h.Queries.SearchUsers(c.Request.Context(), parseFilter(c), params)
	if err != nil {
		fail(c, statusFor(err), "search failed", nil)
		return
	}
	ok(c, http.StatusOK, result.Items, "users", gin.H{
		"total_count":       result.TotalCount,
		"page_number":       result.PageNumber,
		"page_size":         result.PageSize,
		"total_pages":       result.TotalPages(),
		"has_next_page":     result.HasNextPage(),
		"has_previous_page": result.HasPreviousPage(),
	})
}

// CountUsers GET /api/admin/users/count
func (h *AdminHandler) CountUsers(c *gin.Context) {
	n, err := h.Queries.CountUsers(c.Request.Context(), parseFilter(c))
	if err != nil {
		fail(c, statusFor(err), "count failed", nil)
		return
	}
	ok(c, http.StatusOK, gin.H{"count": n}, "user count", nil)
}

// GetUser GET /api/admin/users/:id (reads the replica, soft-deleted included)
func (h *AdminHandler) GetUser(c *gin.Context) {
	doc, err := h.Queries.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, statusFor(err), "user not found", nil)
		return
	}
	ok(c, http.StatusOK, doc, "user", nil)
}

// HardDeleteUser DELETE /api/admin/users/:id removes the row permanently.
func (h *AdminHandler) HardDeleteUser(c *gin.Context) {
	if err := h.Svc.HardDelete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, statusFor(err), "failed to delete user", errDetails(err))
		return
	}
	ok(c, http.StatusOK, map[string]any{"deleted": true}, "user deleted", nil)
}
