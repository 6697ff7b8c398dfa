package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps the administrative methods.
//
// Every method is authorized by the remote API; a non-admin session gets the remote 403.
type AdminService interface {
	Overview(ctx context.Context, sess *models.Session) (*models.AdminOverview, error)
	AssignRole(ctx context.Context, sess *models.Session, userID int64, req *models.AssignRoleRequest) (*models.User, error)
	DeleteUser(ctx context.Context, sess *models.Session, userID int64) error
	DeleteCourse(ctx context.Context, sess *models.Session, courseID int64) error
	UpdateEnrollmentStatus(ctx context.Context, sess *models.Session, enrollmentID int64, req *models.UpdateEnrollmentStatusRequest) (*models.Enrollment, error)
}

// AdminHandler handles HTTP requests for the admin pages
type AdminHandler struct {
	BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  BaseHandler{logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers all admin handler routes
// Note: This assumes the router is already scoped to /api/v1 and carries the session middleware
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/overview", h.Overview)
		r.Post("/users/{userId}/role", h.AssignRole)
		r.Delete("/users/{userId}", h.DeleteUser)
		r.Delete("/courses/{courseId}", h.DeleteCourse)
		r.Put("/enrollments/{enrollmentId}/status", h.UpdateEnrollmentStatus)
	})
}

// Overview handles GET /admin/overview
// @Summary Admin overview
// @Description All users, courses and enrollments
// @Tags admin
// @Security SessionID
// @Produce json
// @Success 200 {object} models.AdminOverview
// @Failure 403 {object} ErrorResponse
// @Router /admin/overview [get]
func (h *AdminHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.adminService.Overview(r.Context(), h.session(r))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to load overview")
		return
	}

	h.respondJSON(w, http.StatusOK, overview)
}

// AssignRole handles POST /admin/users/{userId}/role
// @Summary Assign a role
// @Tags admin
// @Security SessionID
// @Accept json
// @Produce json
// @Param userId path int true "User ID"
// @Param request body models.AssignRoleRequest true "Role"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /admin/users/{userId}/role [post]
func (h *AdminHandler) AssignRole(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.idParam(w, r, "userId")
	if !ok {
		return
	}

	var req models.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.adminService.AssignRole(r.Context(), h.session(r), userID, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to assign role")
		return
	}

	h.respondJSON(w, http.StatusOK, user)
}

// DeleteUser handles DELETE /admin/users/{userId}
// @Summary Delete a user
// @Tags admin
// @Security SessionID
// @Param userId path int true "User ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /admin/users/{userId} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.idParam(w, r, "userId")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), h.session(r), userID); err != nil {
		h.respondServiceError(w, r, err, "failed to delete user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteCourse handles DELETE /admin/courses/{courseId}
// @Summary Delete a course
// @Tags admin
// @Security SessionID
// @Param courseId path int true "Course ID"
// @Success 204
// @Failure 403 {object} ErrorResponse
// @Router /admin/courses/{courseId} [delete]
func (h *AdminHandler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	if err := h.adminService.DeleteCourse(r.Context(), h.session(r), courseID); err != nil {
		h.respondServiceError(w, r, err, "failed to delete course")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UpdateEnrollmentStatus handles PUT /admin/enrollments/{enrollmentId}/status
// @Summary Update enrollment status
// @Description The status value is forwarded to the remote API, which validates it
// @Tags admin
// @Security SessionID
// @Accept json
// @Produce json
// @Param enrollmentId path int true "Enrollment ID"
// @Param request body models.UpdateEnrollmentStatusRequest true "Status"
// @Success 200 {object} models.Enrollment
// @Failure 400 {object} ErrorResponse
// @Router /admin/enrollments/{enrollmentId}/status [put]
func (h *AdminHandler) UpdateEnrollmentStatus(w http.ResponseWriter, r *http.Request) {
	enrollmentID, ok := h.idParam(w, r, "enrollmentId")
	if !ok {
		return
	}

	var req models.UpdateEnrollmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	enrollment, err := h.adminService.UpdateEnrollmentStatus(r.Context(), h.session(r), enrollmentID, &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to update enrollment status")
		return
	}

	h.respondJSON(w, http.StatusOK, enrollment)
}
