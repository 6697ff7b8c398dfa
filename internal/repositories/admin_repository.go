package repositories

import (
	"context"
	"strconv"

	"github.com/learnhub/lms-webclient/internal/models"
)

type adminRepository struct {
	api *APIClient
}

// NewAdminRepository creates a repository for the admin endpoints
func NewAdminRepository(api *APIClient) *adminRepository {
	return &adminRepository{api: api}
}

// ListUsers retrieves all users
func (r *adminRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	resp, err := r.api.request(ctx).SetResult(&users).Get("/admin/users")
	if err := r.api.check("list users", resp, err); err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ListCourses retrieves all courses
func (r *adminRepository) ListCourses(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	resp, err := r.api.request(ctx).SetResult(&courses).Get("/admin/courses")
	if err := r.api.check("list all courses", resp, err); err != nil {
		return nil, err
	}
	if courses == nil {
		courses = []models.Course{}
	}
	return courses, nil
}

// ListEnrollments retrieves all enrollments
func (r *adminRepository) ListEnrollments(ctx context.Context) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	resp, err := r.api.request(ctx).SetResult(&enrollments).Get("/admin/enrollments")
	if err := r.api.check("list all enrollments", resp, err); err != nil {
		return nil, err
	}
	if enrollments == nil {
		enrollments = []models.Enrollment{}
	}
	return enrollments, nil
}

// AssignRole grants roleName to a user
func (r *adminRepository) AssignRole(ctx context.Context, userID int64, roleName string) (*models.User, error) {
	var user models.User
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		SetQueryParam("roleName", roleName).
		SetResult(&user).
		Post("/admin/users/{id}/role")
	if err := r.api.check("assign role", resp, err); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes a user
func (r *adminRepository) DeleteUser(ctx context.Context, userID int64) error {
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(userID, 10)).
		Delete("/admin/users/{id}")
	return r.api.check("delete user", resp, err)
}

// DeleteCourse removes a course
func (r *adminRepository) DeleteCourse(ctx context.Context, courseID int64) error {
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(courseID, 10)).
		Delete("/admin/courses/{id}")
	return r.api.check("delete course", resp, err)
}

// UpdateEnrollmentStatus changes the status of an enrollment
func (r *adminRepository) UpdateEnrollmentStatus(ctx context.Context, enrollmentID int64, status string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(enrollmentID, 10)).
		SetQueryParam("status", status).
		SetResult(&enrollment).
		Put("/admin/enrollments/{id}/status")
	if err := r.api.check("update enrollment status", resp, err); err != nil {
		return nil, err
	}
	return &enrollment, nil
}
