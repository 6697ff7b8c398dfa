package services

import (
	"context"
	"fmt"

	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const noticeDashboardFailed = "Failed to load your courses"

type studentService struct {
	backends BackendFactory
	logger   *zap.Logger
}

// NewStudentService creates a new student service
func NewStudentService(backends BackendFactory, logger *zap.Logger) *studentService {
	return &studentService{
		backends: backends,
		logger:   logger,
	}
}

// ListEnrollments retrieves the session user's enrollments with server-computed progress
func (s *studentService) ListEnrollments(ctx context.Context, sess *models.Session) ([]models.Enrollment, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	enrollments, err := s.backends(sess.Token).Enrollments.ListByStudent(ctx, sess.Email)
	if err != nil {
		s.logger.Error("failed to list enrollments", zap.String("student_email", sess.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// ListCourses retrieves the course catalog
func (s *studentService) ListCourses(ctx context.Context, sess *models.Session) ([]models.Course, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	courses, err := s.backends(sess.Token).Courses.List(ctx)
	if err != nil {
		s.logger.Error("failed to list courses", zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// Enroll registers the session user in courseID and returns the refreshed enrollments
func (s *studentService) Enroll(ctx context.Context, sess *models.Session, courseID int64) ([]models.Enrollment, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if courseID <= 0 {
		return nil, &ValidationError{Fields: map[string]string{"courseId": "courseId must be greater than 0"}}
	}

	backend := s.backends(sess.Token)
	if _, err := backend.Enrollments.Enroll(ctx, sess.Email, courseID); err != nil {
		s.logger.Error("failed to enroll",
			zap.String("student_email", sess.Email),
			zap.Int64("course_id", courseID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to enroll: %w", err)
	}

	enrollments, err := backend.Enrollments.ListByStudent(ctx, sess.Email)
	if err != nil {
		s.logger.Error("failed to refresh enrollments", zap.String("student_email", sess.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return enrollments, nil
}

// Dashboard loads the student home page.
//
// Enrollments and the catalog are fetched concurrently. A failed fetch leaves its
// list empty and sets a notice instead of failing the whole page.
func (s *studentService) Dashboard(ctx context.Context, sess *models.Session) (*models.StudentDashboard, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	backend := s.backends(sess.Token)
	var (
		enrollments    []models.Enrollment
		courses        []models.Course
		enrollmentsErr error
		coursesErr     error
	)

	var g errgroup.Group
	g.Go(func() error {
		enrollments, enrollmentsErr = backend.Enrollments.ListByStudent(ctx, sess.Email)
		return enrollmentsErr
	})
	g.Go(func() error {
		courses, coursesErr = backend.Courses.List(ctx)
		return coursesErr
	})
	_ = g.Wait()

	dashboard := &models.StudentDashboard{
		Enrollments:       []models.Enrollment{},
		Courses:           []models.Course{},
		EnrolledCourseIDs: []int64{},
	}
	if enrollmentsErr == nil && enrollments != nil {
		dashboard.Enrollments = enrollments
		for _, e := range enrollments {
			dashboard.EnrolledCourseIDs = append(dashboard.EnrolledCourseIDs, e.CourseID)
		}
	} else if enrollmentsErr != nil {
		s.logger.Error("failed to list enrollments", zap.String("student_email", sess.Email), zap.Error(enrollmentsErr))
	}
	if coursesErr == nil && courses != nil {
		dashboard.Courses = courses
	} else if coursesErr != nil {
		s.logger.Error("failed to list courses", zap.Error(coursesErr))
	}

	if enrollmentsErr != nil || coursesErr != nil {
		dashboard.Notice = models.NewErrorNotice(noticeDashboardFailed)
	}
	return dashboard, nil
}
