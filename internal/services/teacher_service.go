package services

import (
	"context"
	"fmt"
	"io"

	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
)

type teacherService struct {
	backends BackendFactory
	logger   *zap.Logger
}

// NewTeacherService creates a new teacher service
func NewTeacherService(backends BackendFactory, logger *zap.Logger) *teacherService {
	return &teacherService{
		backends: backends,
		logger:   logger,
	}
}

// ListMyCourses retrieves the courses taught by the session user
func (s *teacherService) ListMyCourses(ctx context.Context, sess *models.Session) ([]models.Course, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	courses, err := s.backends(sess.Token).Courses.ListByInstructor(ctx, sess.Email)
	if err != nil {
		s.logger.Error("failed to list instructor courses", zap.String("instructor_email", sess.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

// CreateCourse creates a course owned by the session user
func (s *teacherService) CreateCourse(ctx context.Context, sess *models.Session, req *models.CreateCourseRequest) (*models.Course, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	course, err := s.backends(sess.Token).Courses.Create(ctx, sess.Email, req)
	if err != nil {
		s.logger.Error("failed to create course", zap.String("instructor_email", sess.Email), zap.Error(err))
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return course, nil
}

// ListContents retrieves the content of a course ordered by OrderIndex
func (s *teacherService) ListContents(ctx context.Context, sess *models.Session, courseID int64) ([]models.ContentItem, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	items, err := s.backends(sess.Token).Contents.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("failed to list contents", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, fmt.Errorf("failed to list contents: %w", err)
	}
	return sortByOrder(items), nil
}

// UploadContent validates the metadata and uploads file as new course content.
//
// A nil file is reported as a validation error on the "file" field.
func (s *teacherService) UploadContent(ctx context.Context, sess *models.Session, req *models.UploadContentRequest, file io.Reader) (*models.ContentItem, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}

	fields := map[string]string{}
	if err := validateStruct(req); err != nil {
		verr, ok := err.(*ValidationError)
		if !ok {
			return nil, err
		}
		fields = verr.Fields
	}
	if file == nil {
		fields["file"] = "file is a required field"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	item, err := s.backends(sess.Token).Contents.Upload(ctx, req, file)
	if err != nil {
		s.logger.Error("failed to upload content",
			zap.Int64("course_id", req.CourseID),
			zap.String("file_name", req.FileName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to upload content: %w", err)
	}
	return item, nil
}

// DeleteContent removes a content item
func (s *teacherService) DeleteContent(ctx context.Context, sess *models.Session, contentID int64) error {
	if sess == nil {
		return ErrUnauthenticated
	}

	if err := s.backends(sess.Token).Contents.Delete(ctx, contentID); err != nil {
		s.logger.Error("failed to delete content", zap.Int64("content_id", contentID), zap.Error(err))
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return nil
}
