package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Notice messages shown on a course view
const (
	noticeLoadFailed   = "Failed to load course content"
	noticeToggleFailed = "Failed to update progress"
)

// ErrCourseNotFound is returned when the remote API does not know a course
var ErrCourseNotFound = errors.New("course not found")

type viewKey struct {
	sessionID string
	courseID  int64
}

// liveView is one open course view of one session
type liveView struct {
	vm     *ProgressViewModel
	course *models.Course
}

type courseViewService struct {
	backends BackendFactory
	logger   *zap.Logger

	mu    sync.Mutex
	views map[viewKey]*liveView
}

// NewCourseViewService creates a new course view service
func NewCourseViewService(backends BackendFactory, logger *zap.Logger) *courseViewService {
	return &courseViewService{
		backends: backends,
		logger:   logger,
		views:    make(map[viewKey]*liveView),
	}
}

// Enter opens a fresh view of courseID for the session and loads it.
//
// Any view the session already had for the course is replaced. Load failures are
// reported as a notice on the returned view; only an unknown course is an error.
func (s *courseViewService) Enter(ctx context.Context, sess *models.Session, courseID int64) (*models.CourseView, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	if courseID <= 0 {
		return nil, ErrCourseNotFound
	}

	backend := s.backends(sess.Token)
	vm := NewProgressViewModel(courseID, sess.Email, backend.Contents, backend.Progress, s.logger)

	var (
		course    *models.Course
		courseErr error
		loadErr   error
	)
	var g errgroup.Group
	g.Go(func() error {
		course, courseErr = backend.Courses.GetByID(ctx, courseID)
		return courseErr
	})
	g.Go(func() error {
		loadErr = vm.Load(ctx)
		return loadErr
	})
	_ = g.Wait()

	if courseErr != nil {
		if RemoteStatus(courseErr) == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %d", ErrCourseNotFound, courseID)
		}
		s.logger.Error("failed to get course", zap.Int64("course_id", courseID), zap.Error(courseErr))
	}

	lv := &liveView{vm: vm, course: course}
	s.mu.Lock()
	s.views[viewKey{sessionID: sess.ID, courseID: courseID}] = lv
	s.mu.Unlock()

	view := lv.render()
	if courseErr != nil || loadErr != nil {
		view.Notice = models.NewErrorNotice(noticeLoadFailed)
	}
	return view, nil
}

// Toggle flips the completion of contentID on the session's live view of courseID.
//
// A failed remote write is reported as a notice on the returned view, which already
// shows the reverted state.
func (s *courseViewService) Toggle(ctx context.Context, sess *models.Session, courseID, contentID int64) (*models.CourseView, error) {
	lv, err := s.lookup(sess, courseID)
	if err != nil {
		return nil, err
	}

	err = lv.vm.ToggleCompletion(ctx, contentID)
	if errors.Is(err, ErrContentNotFound) {
		return nil, err
	}

	view := lv.render()
	if err != nil {
		view.Notice = models.NewErrorNotice(noticeToggleFailed)
	}
	return view, nil
}

// Get returns the current state of the session's live view of courseID without network calls
func (s *courseViewService) Get(sess *models.Session, courseID int64) (*models.CourseView, error) {
	lv, err := s.lookup(sess, courseID)
	if err != nil {
		return nil, err
	}
	return lv.render(), nil
}

// Leave discards the session's view of courseID.
// Writes still in flight on the discarded view are never observed.
func (s *courseViewService) Leave(sess *models.Session, courseID int64) {
	if sess == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.views, viewKey{sessionID: sess.ID, courseID: courseID})
}

// LeaveAll discards every view of the session and returns how many were open
func (s *courseViewService) LeaveAll(sessionID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.views {
		if key.sessionID == sessionID {
			delete(s.views, key)
			n++
		}
	}
	return n
}

// SessionIDs returns the ids of the sessions holding at least one open view
func (s *courseViewService) SessionIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{})
	ids := make([]string, 0)
	for key := range s.views {
		if _, ok := seen[key.sessionID]; ok {
			continue
		}
		seen[key.sessionID] = struct{}{}
		ids = append(ids, key.sessionID)
	}
	return ids
}

func (s *courseViewService) lookup(sess *models.Session, courseID int64) (*liveView, error) {
	if sess == nil {
		return nil, ErrUnauthenticated
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	lv, ok := s.views[viewKey{sessionID: sess.ID, courseID: courseID}]
	if !ok {
		return nil, ErrViewNotFound
	}
	return lv, nil
}

func (lv *liveView) render() *models.CourseView {
	view := lv.vm.Snapshot()
	view.Course = lv.course
	return view
}
