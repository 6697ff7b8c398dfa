package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
)

// StudentService is the interface that wraps methods for the student pages.
type StudentService interface {
	// Method ListEnrollments retrieves the session user's enrollments with server-computed progress.
	ListEnrollments(ctx context.Context, sess *models.Session) ([]models.Enrollment, error)
	// Method Enroll registers the session user in a course and returns the refreshed enrollments.
	Enroll(ctx context.Context, sess *models.Session, courseID int64) ([]models.Enrollment, error)
	// Method Dashboard loads enrollments and the course catalog.
	//
	// Fetch failures are reported as a notice on the dashboard, not as an error.
	Dashboard(ctx context.Context, sess *models.Session) (*models.StudentDashboard, error)
}

// CourseViewService is the interface that wraps methods for the live course views of a session.
type CourseViewService interface {
	// Method Enter opens and loads a fresh view of a course.
	//
	// Load failures are reported as a notice on the returned view.
	// An unknown course yields services.ErrCourseNotFound.
	Enter(ctx context.Context, sess *models.Session, courseID int64) (*models.CourseView, error)
	// Method Toggle flips completion of one content item with an optimistic update.
	//
	// A failed write is reported as a notice on the returned, already reverted view.
	// A course that was never entered yields services.ErrViewNotFound.
	Toggle(ctx context.Context, sess *models.Session, courseID, contentID int64) (*models.CourseView, error)
	// Method Get returns the current state of an open view without network calls.
	Get(sess *models.Session, courseID int64) (*models.CourseView, error)
	// Method Leave discards an open view.
	Leave(sess *models.Session, courseID int64)
}

// StudentHandler handles HTTP requests for the student pages
type StudentHandler struct {
	BaseHandler
	studentService StudentService
	views          CourseViewService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService StudentService, views CourseViewService, logger *zap.Logger) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    BaseHandler{logger: logger},
		studentService: studentService,
		views:          views,
	}
}

// RegisterRoutes registers all student handler routes
// Note: This assumes the router is already scoped to /api/v1 and carries the session middleware
func (h *StudentHandler) RegisterRoutes(r chi.Router) {
	r.Route("/student", func(r chi.Router) {
		r.Get("/dashboard", h.Dashboard)
		r.Get("/enrollments", h.ListEnrollments)
		r.Post("/enrollments/{courseId}", h.Enroll)
		r.Route("/courses/{courseId}", func(r chi.Router) {
			r.Get("/", h.EnterCourse)
			r.Delete("/", h.LeaveCourse)
			r.Get("/state", h.CourseState)
			r.Post("/contents/{contentId}/toggle", h.ToggleCompletion)
		})
	})
}

// Dashboard handles GET /student/dashboard
// @Summary Student dashboard
// @Description Enrollments with progress, the course catalog and the ids of enrolled courses
// @Tags student
// @Security SessionID
// @Produce json
// @Success 200 {object} models.StudentDashboard
// @Failure 401 {object} ErrorResponse
// @Router /student/dashboard [get]
func (h *StudentHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.studentService.Dashboard(r.Context(), h.session(r))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to load dashboard")
		return
	}

	h.respondJSON(w, http.StatusOK, dashboard)
}

// ListEnrollments handles GET /student/enrollments
// @Summary List enrollments
// @Description Enrollments of the logged-in student with server-computed progress
// @Tags student
// @Security SessionID
// @Produce json
// @Success 200 {array} models.Enrollment
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /student/enrollments [get]
func (h *StudentHandler) ListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := h.studentService.ListEnrollments(r.Context(), h.session(r))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get enrollments")
		return
	}

	h.respondJSON(w, http.StatusOK, enrollments)
}

// Enroll handles POST /student/enrollments/{courseId}
// @Summary Enroll in a course
// @Description Enroll the logged-in student and return the refreshed enrollments
// @Tags student
// @Security SessionID
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.Enrollment
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Already enrolled"
// @Router /student/enrollments/{courseId} [post]
func (h *StudentHandler) Enroll(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	enrollments, err := h.studentService.Enroll(r.Context(), h.session(r), courseID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to enroll")
		return
	}

	h.respondJSON(w, http.StatusOK, enrollments)
}

// EnterCourse handles GET /student/courses/{courseId}
// @Summary Open a course view
// @Description Load course content and the student's progress into a fresh course view
// @Tags student
// @Security SessionID
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.CourseView
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /student/courses/{courseId} [get]
func (h *StudentHandler) EnterCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	view, err := h.views.Enter(r.Context(), h.session(r), courseID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to open course")
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// CourseState handles GET /student/courses/{courseId}/state
// @Summary Course view state
// @Description Current state of an open course view, including in-flight optimistic toggles
// @Tags student
// @Security SessionID
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {object} models.CourseView
// @Failure 404 {object} ErrorResponse "Course view not open"
// @Router /student/courses/{courseId}/state [get]
func (h *StudentHandler) CourseState(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	view, err := h.views.Get(h.session(r), courseID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get course state")
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// ToggleCompletion handles POST /student/courses/{courseId}/contents/{contentId}/toggle
// @Summary Toggle lesson completion
// @Description Flip completion of a lesson. A failed write returns the reverted view with an error notice.
// @Tags student
// @Security SessionID
// @Produce json
// @Param courseId path int true "Course ID"
// @Param contentId path int true "Content ID"
// @Success 200 {object} models.CourseView
// @Failure 404 {object} ErrorResponse "Course view not open or content not in course"
// @Router /student/courses/{courseId}/contents/{contentId}/toggle [post]
func (h *StudentHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}
	contentID, ok := h.idParam(w, r, "contentId")
	if !ok {
		return
	}

	view, err := h.views.Toggle(r.Context(), h.session(r), courseID, contentID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to toggle completion")
		return
	}

	h.respondJSON(w, http.StatusOK, view)
}

// LeaveCourse handles DELETE /student/courses/{courseId}
// @Summary Close a course view
// @Tags student
// @Security SessionID
// @Param courseId path int true "Course ID"
// @Success 204
// @Router /student/courses/{courseId} [delete]
func (h *StudentHandler) LeaveCourse(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	h.views.Leave(h.session(r), courseID)
	w.WriteHeader(http.StatusNoContent)
}
