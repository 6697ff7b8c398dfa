package repositories

import (
	"context"
	"strconv"

	"github.com/learnhub/lms-webclient/internal/models"
)

type enrollmentRepository struct {
	api *APIClient
}

// NewEnrollmentRepository creates a repository for student enrollments
func NewEnrollmentRepository(api *APIClient) *enrollmentRepository {
	return &enrollmentRepository{api: api}
}

// ListByStudent retrieves the enrollments of a student
func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	resp, err := r.api.request(ctx).
		SetQueryParam("email", studentEmail).
		SetResult(&enrollments).
		Get("/enrollments/student")
	if err := r.api.check("list enrollments", resp, err); err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	return enrollments, nil
}

// Enroll registers a student in a course
func (r *enrollmentRepository) Enroll(ctx context.Context, studentEmail string, courseID int64) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	resp, err := r.api.request(ctx).
		SetQueryParams(map[string]string{
			"studentEmail": studentEmail,
			"courseId":     strconv.FormatInt(courseID, 10),
		}).
		SetResult(&enrollment).
		Post("/enrollments")
	if err := r.api.check("enroll", resp, err); err != nil {
		return nil, err
	}
	return &enrollment, nil
}
