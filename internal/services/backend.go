package services

import (
	"context"
	"io"

	"github.com/learnhub/lms-webclient/internal/models"
)

// ContentRepository is the interface that wraps methods for course content on the remote API.
type ContentRepository interface {
	ContentCatalog
	// Method Upload sends a content file together with its metadata.
	//
	// "file" is streamed as the multipart "file" part named req.FileName.
	// If the upload fails, the error will be returned together with "nil" value.
	Upload(ctx context.Context, req *models.UploadContentRequest, file io.Reader) (*models.ContentItem, error)
	// Method Delete removes a content item.
	Delete(ctx context.Context, contentID int64) error
}

// CourseRepository is the interface that wraps methods for courses on the remote API.
type CourseRepository interface {
	// Method GetByID retrieves course metadata.
	GetByID(ctx context.Context, courseID int64) (*models.Course, error)
	// Method List retrieves the course catalog.
	List(ctx context.Context) ([]models.Course, error)
	// Method ListByInstructor retrieves the courses taught by instructorEmail.
	ListByInstructor(ctx context.Context, instructorEmail string) ([]models.Course, error)
	// Method Create creates a course owned by instructorEmail.
	Create(ctx context.Context, instructorEmail string, req *models.CreateCourseRequest) (*models.Course, error)
}

// EnrollmentRepository is the interface that wraps methods for enrollments on the remote API.
type EnrollmentRepository interface {
	// Method ListByStudent retrieves the enrollments of a student with server-computed progress.
	ListByStudent(ctx context.Context, studentEmail string) ([]models.Enrollment, error)
	// Method Enroll registers a student in a course.
	Enroll(ctx context.Context, studentEmail string, courseID int64) (*models.Enrollment, error)
}

// AdminRepository is the interface that wraps the administrative methods of the remote API.
type AdminRepository interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	ListCourses(ctx context.Context) ([]models.Course, error)
	ListEnrollments(ctx context.Context) ([]models.Enrollment, error)
	AssignRole(ctx context.Context, userID int64, roleName string) (*models.User, error)
	DeleteUser(ctx context.Context, userID int64) error
	DeleteCourse(ctx context.Context, courseID int64) error
	UpdateEnrollmentStatus(ctx context.Context, enrollmentID int64, status string) (*models.Enrollment, error)
}

// AuthRepository is the interface that wraps the authentication methods of the remote API.
type AuthRepository interface {
	// Method Login exchanges credentials for a bearer token.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	// Method Register creates a user account.
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
}

// Backend is the set of remote repositories acting as one user
type Backend struct {
	Contents    ContentRepository
	Progress    ProgressStore
	Courses     CourseRepository
	Enrollments EnrollmentRepository
	Admin       AdminRepository
	Auth        AuthRepository
}

// BackendFactory builds a Backend authenticated with token.
// An empty token yields an anonymous backend.
type BackendFactory func(token string) *Backend
