package services

import (
	"context"
	"fmt"

	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type adminService struct {
	backends BackendFactory
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(backends BackendFactory, logger *zap.Logger) *adminService {
	return &adminService{
		backends: backends,
		logger:   logger,
	}
}

// Overview loads users, courses and enrollments concurrently.
// The first failure cancels the other fetches and is returned.
func (s *adminService) Overview(ctx context.Context, sess *models.Session) (*models.AdminOverview, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	admin := s.backends(sess.Token).Admin
	overview := &models.AdminOverview{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := admin.ListUsers(gctx)
		overview.Users = users
		return err
	})
	g.Go(func() error {
		courses, err := admin.ListCourses(gctx)
		overview.Courses = courses
		return err
	})
	g.Go(func() error {
		enrollments, err := admin.ListEnrollments(gctx)
		overview.Enrollments = enrollments
		return err
	})
	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load admin overview", zap.Error(err))
		return nil, fmt.Errorf("failed to load overview: %w", err)
	}

	if overview.Users == nil {
		overview.Users = []models.User{}
	}
	if overview.Courses == nil {
		overview.Courses = []models.Course{}
	}
	if overview.Enrollments == nil {
		overview.Enrollments = []models.Enrollment{}
	}
	return overview, nil
}

// AssignRole grants req.RoleName to userID
func (s *adminService) AssignRole(ctx context.Context, sess *models.Session, userID int64, req *models.AssignRoleRequest) (*models.User, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.backends(sess.Token).Admin.AssignRole(ctx, userID, req.RoleName)
	if err != nil {
		s.logger.Error("failed to assign role",
			zap.Int64("user_id", userID),
			zap.String("role", req.RoleName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to assign role: %w", err)
	}
	return user, nil
}

// DeleteUser removes a user account
func (s *adminService) DeleteUser(ctx context.Context, sess *models.Session, userID int64) error {
	if sess == nil {
		return ErrUnauthenticated
	}

	if err := s.backends(sess.Token).Admin.DeleteUser(ctx, userID); err != nil {
		s.logger.Error("failed to delete user", zap.Int64("user_id", userID), zap.Error(err))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// DeleteCourse removes a course
func (s *adminService) DeleteCourse(ctx context.Context, sess *models.Session, courseID int64) error {
	if sess == nil {
		return ErrUnauthenticated
	}

	if err := s.backends(sess.Token).Admin.DeleteCourse(ctx, courseID); err != nil {
		s.logger.Error("failed to delete course", zap.Int64("course_id", courseID), zap.Error(err))
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}

// UpdateEnrollmentStatus forwards a new enrollment status; the remote API validates the value
func (s *adminService) UpdateEnrollmentStatus(ctx context.Context, sess *models.Session, enrollmentID int64, req *models.UpdateEnrollmentStatusRequest) (*models.Enrollment, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	enrollment, err := s.backends(sess.Token).Admin.UpdateEnrollmentStatus(ctx, enrollmentID, req.Status)
	if err != nil {
		s.logger.Error("failed to update enrollment status",
			zap.Int64("enrollment_id", enrollmentID),
			zap.String("status", req.Status),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to update enrollment status: %w", err)
	}
	return enrollment, nil
}
