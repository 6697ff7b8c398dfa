package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
)

// TeacherService is the interface that wraps methods for course authoring.
type TeacherService interface {
	// Method ListMyCourses retrieves the courses taught by the session user.
	ListMyCourses(ctx context.Context, sess *models.Session) ([]models.Course, error)
	// Method CreateCourse creates a course owned by the session user.
	CreateCourse(ctx context.Context, sess *models.Session, req *models.CreateCourseRequest) (*models.Course, error)
	// Method ListContents retrieves the content of a course ordered by OrderIndex.
	ListContents(ctx context.Context, sess *models.Session, courseID int64) ([]models.ContentItem, error)
	// Method UploadContent validates the metadata and uploads file as new course content.
	//
	// A nil file is reported as a validation error.
	UploadContent(ctx context.Context, sess *models.Session, req *models.UploadContentRequest, file io.Reader) (*models.ContentItem, error)
	// Method DeleteContent removes a content item.
	DeleteContent(ctx context.Context, sess *models.Session, contentID int64) error
}

// TeacherHandler handles HTTP requests for the teacher pages
type TeacherHandler struct {
	BaseHandler
	teacherService TeacherService
	maxUploadSize  int64
}

// NewTeacherHandler creates a new teacher handler
func NewTeacherHandler(teacherService TeacherService, maxUploadSize int64, logger *zap.Logger) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:    BaseHandler{logger: logger},
		teacherService: teacherService,
		maxUploadSize:  maxUploadSize,
	}
}

// RegisterRoutes registers all teacher handler routes
// Note: This assumes the router is already scoped to /api/v1 and carries the session middleware
func (h *TeacherHandler) RegisterRoutes(r chi.Router) {
	r.Route("/teacher", func(r chi.Router) {
		r.Get("/courses", h.ListMyCourses)
		r.Post("/courses", h.CreateCourse)
		r.Get("/courses/{courseId}/contents", h.ListContents)
		r.Post("/courses/{courseId}/contents", h.UploadContent)
		r.Delete("/contents/{contentId}", h.DeleteContent)
	})
}

// ListMyCourses handles GET /teacher/courses
// @Summary List my courses
// @Description Courses taught by the logged-in teacher
// @Tags teacher
// @Security SessionID
// @Produce json
// @Success 200 {array} models.Course
// @Failure 401 {object} ErrorResponse
// @Router /teacher/courses [get]
func (h *TeacherHandler) ListMyCourses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.teacherService.ListMyCourses(r.Context(), h.session(r))
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get courses")
		return
	}

	h.respondJSON(w, http.StatusOK, courses)
}

// CreateCourse handles POST /teacher/courses
// @Summary Create a course
// @Tags teacher
// @Security SessionID
// @Accept json
// @Produce json
// @Param request body models.CreateCourseRequest true "Course"
// @Success 201 {object} models.Course
// @Failure 400 {object} ErrorResponse
// @Router /teacher/courses [post]
func (h *TeacherHandler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCourseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	course, err := h.teacherService.CreateCourse(r.Context(), h.session(r), &req)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to create course")
		return
	}

	h.respondJSON(w, http.StatusCreated, course)
}

// ListContents handles GET /teacher/courses/{courseId}/contents
// @Summary List course contents
// @Description Content items of a course ordered by orderIndex
// @Tags teacher
// @Security SessionID
// @Produce json
// @Param courseId path int true "Course ID"
// @Success 200 {array} models.ContentItem
// @Failure 400 {object} ErrorResponse
// @Router /teacher/courses/{courseId}/contents [get]
func (h *TeacherHandler) ListContents(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	items, err := h.teacherService.ListContents(r.Context(), h.session(r), courseID)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to get contents")
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// UploadContent handles POST /teacher/courses/{courseId}/contents
// @Summary Upload course content
// @Description Upload a VIDEO, PDF or DOC file with its metadata
// @Tags teacher
// @Security SessionID
// @Accept multipart/form-data
// @Produce json
// @Param courseId path int true "Course ID"
// @Param title formData string true "Title"
// @Param description formData string false "Description"
// @Param contentType formData string true "VIDEO, PDF or DOC"
// @Param orderIndex formData int false "Position in the course, default 0"
// @Param file formData file true "Content file"
// @Success 201 {object} models.ContentItem
// @Failure 400 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /teacher/courses/{courseId}/contents [post]
func (h *TeacherHandler) UploadContent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := h.idParam(w, r, "courseId")
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		h.logger.Error("failed to parse multipart form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to parse request")
		return
	}

	req := &models.UploadContentRequest{
		CourseID:    courseID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		ContentType: models.ContentType(r.FormValue("contentType")),
	}
	if raw := r.FormValue("orderIndex"); raw != "" {
		orderIndex, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "invalid orderIndex parameter")
			return
		}
		req.OrderIndex = orderIndex
	}

	var file io.Reader
	f, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer f.Close()
		file = f
		req.FileName = header.Filename
	case !errors.Is(err, http.ErrMissingFile):
		h.logger.Error("failed to get content file from form", zap.Error(err))
		h.respondError(w, http.StatusBadRequest, "failed to process content file")
		return
	}

	item, err := h.teacherService.UploadContent(r.Context(), h.session(r), req, file)
	if err != nil {
		h.respondServiceError(w, r, err, "failed to upload content")
		return
	}

	h.respondJSON(w, http.StatusCreated, item)
}

// DeleteContent handles DELETE /teacher/contents/{contentId}
// @Summary Delete course content
// @Tags teacher
// @Security SessionID
// @Param contentId path int true "Content ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Router /teacher/contents/{contentId} [delete]
func (h *TeacherHandler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	contentID, ok := h.idParam(w, r, "contentId")
	if !ok {
		return
	}

	if err := h.teacherService.DeleteContent(r.Context(), h.session(r), contentID); err != nil {
		h.respondServiceError(w, r, err, "failed to delete content")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
