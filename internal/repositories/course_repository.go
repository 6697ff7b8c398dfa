package repositories

import (
	"context"
	"strconv"

	"github.com/learnhub/lms-webclient/internal/models"
)

type courseRepository struct {
	api *APIClient
}

// NewCourseRepository creates a repository for course metadata
func NewCourseRepository(api *APIClient) *courseRepository {
	return &courseRepository{api: api}
}

// GetByID retrieves course metadata
func (r *courseRepository) GetByID(ctx context.Context, courseID int64) (*models.Course, error) {
	var course models.Course
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(courseID, 10)).
		SetResult(&course).
		Get("/courses/{id}")
	if err := r.api.check("fetch course", resp, err); err != nil {
		return nil, err
	}
	return &course, nil
}

// List retrieves the course catalog
func (r *courseRepository) List(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	resp, err := r.api.request(ctx).
		SetResult(&courses).
		Get("/courses")
	if err := r.api.check("list courses", resp, err); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// ListByInstructor retrieves the courses taught by an instructor
func (r *courseRepository) ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Course, error) {
	var courses []models.Course
	resp, err := r.api.request(ctx).
		SetQueryParam("email", instructorEmail).
		SetResult(&courses).
		Get("/courses/instructor")
	if err := r.api.check("list instructor courses", resp, err); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// Create creates a course taught by instructorEmail
func (r *courseRepository) Create(ctx context.Context, instructorEmail string, req *models.CreateCourseRequest) (*models.Course, error) {
	var course models.Course
	resp, err := r.api.request(ctx).
		SetQueryParam("instructorEmail", instructorEmail).
		SetBody(req).
		SetResult(&course).
		Post("/courses")
	if err := r.api.check("create course", resp, err); err != nil {
		return nil, err
	}
	return &course, nil
}
