package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/learnhub/lms-webclient/internal/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ContentCatalog is the remote source of course content
type ContentCatalog interface {
	// ListByCourse retrieves the content items of a course.
	//
	// Items are returned in arbitrary order; callers sort by OrderIndex.
	ListByCourse(ctx context.Context, courseID int64) ([]models.ContentItem, error)
}

// ProgressStore is the remote authority for per-lesson progress
type ProgressStore interface {
	// ListByCourse retrieves the progress records of a student in a course.
	ListByCourse(ctx context.Context, studentEmail string, courseID int64) ([]models.ProgressRecord, error)
	// Update writes the completion percentage of one content item.
	//
	// If the write fails, the error is returned and nothing is persisted.
	Update(ctx context.Context, req models.UpdateProgressRequest) (*models.ProgressRecord, error)
}

// progressWriteTimeout bounds a progress write detached from its request
const progressWriteTimeout = 30 * time.Second

// ErrContentNotFound is returned when toggling an item that is not part of the course
var ErrContentNotFound = errors.New("content not found in course")

// toggleState tracks in-flight completion writes of one content item
type toggleState struct {
	latest       uint64
	resolved     bool
	confirmed    bool
	confirmedSeq uint64
}

// ProgressViewModel derives lesson completion of one student in one course.
//
// Toggles are applied locally before the remote write and reverted if the write fails.
// Each toggle gets a per-item sequence number; only the latest toggle of an item decides
// the displayed state, older responses only update the value the item reverts to.
// Local state is guarded by a mutex that is never held across a network call.
type ProgressViewModel struct {
	courseID     int64
	studentEmail string
	catalog      ContentCatalog
	store        ProgressStore
	logger       *zap.Logger

	mu        sync.Mutex
	epoch     uint64
	items     []models.ContentItem
	completed map[int64]struct{}
	toggles   map[int64]*toggleState
}

// NewProgressViewModel creates an unloaded view-model for studentEmail in courseID
func NewProgressViewModel(courseID int64, studentEmail string, catalog ContentCatalog, store ProgressStore, logger *zap.Logger) *ProgressViewModel {
	return &ProgressViewModel{
		courseID:     courseID,
		studentEmail: studentEmail,
		catalog:      catalog,
		store:        store,
		logger:       logger,
		items:        []models.ContentItem{},
		completed:    make(map[int64]struct{}),
		toggles:      make(map[int64]*toggleState),
	}
}

// CourseID returns the course the view-model is bound to
func (vm *ProgressViewModel) CourseID() int64 {
	return vm.courseID
}

// Load fetches course content and the student's progress concurrently.
//
// Content is stably sorted by OrderIndex. The completion set is rebuilt from scratch
// out of the records with percentComplete >= 100. A failed fetch keeps the previous
// value of the state it feeds; the returned error joins both failures.
func (vm *ProgressViewModel) Load(ctx context.Context) error {
	var (
		items       []models.ContentItem
		records     []models.ProgressRecord
		contentErr  error
		progressErr error
	)

	var g errgroup.Group
	g.Go(func() error {
		items, contentErr = vm.catalog.ListByCourse(ctx, vm.courseID)
		return contentErr
	})
	g.Go(func() error {
		records, progressErr = vm.store.ListByCourse(ctx, vm.studentEmail, vm.courseID)
		return progressErr
	})
	_ = g.Wait()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if contentErr == nil {
		vm.items = sortByOrder(items)
	} else {
		vm.logger.Error("failed to load course content",
			zap.Int64("course_id", vm.courseID),
			zap.Error(contentErr),
		)
		contentErr = fmt.Errorf("failed to load content: %w", contentErr)
	}

	if progressErr == nil {
		vm.completed = completionSet(records)
		// Responses of toggles issued before this load must not touch the new set
		vm.epoch++
		vm.toggles = make(map[int64]*toggleState)
	} else {
		vm.logger.Error("failed to load course progress",
			zap.Int64("course_id", vm.courseID),
			zap.String("student_email", vm.studentEmail),
			zap.Error(progressErr),
		)
		progressErr = fmt.Errorf("failed to load progress: %w", progressErr)
	}

	return errors.Join(contentErr, progressErr)
}

// ToggleCompletion flips the completion of contentID and persists it.
//
// The flip is visible immediately. If the remote write fails, the item goes back to
// the last state confirmed by the server and the write error is returned.
func (vm *ProgressViewModel) ToggleCompletion(ctx context.Context, contentID int64) error {
	vm.mu.Lock()
	if !vm.hasItem(contentID) {
		vm.mu.Unlock()
		return ErrContentNotFound
	}

	_, wasCompleted := vm.completed[contentID]
	target := models.CompletePercent
	if wasCompleted {
		target = 0
	}
	vm.setCompleted(contentID, !wasCompleted)

	st, ok := vm.toggles[contentID]
	if !ok {
		st = &toggleState{confirmed: wasCompleted}
		vm.toggles[contentID] = st
	}
	st.latest++
	st.resolved = false
	seq := st.latest
	epoch := vm.epoch
	vm.mu.Unlock()

	// Detached from the request: a browser that disconnects does not cancel the write
	writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), progressWriteTimeout)
	_, err := vm.store.Update(writeCtx, models.UpdateProgressRequest{
		StudentEmail:    vm.studentEmail,
		CourseID:        vm.courseID,
		ContentID:       contentID,
		PercentComplete: target,
	})
	cancel()

	vm.mu.Lock()
	defer vm.mu.Unlock()

	if err != nil {
		vm.logger.Error("failed to update progress",
			zap.Int64("course_id", vm.courseID),
			zap.Int64("content_id", contentID),
			zap.Int("percent_complete", target),
			zap.Error(err),
		)
		err = fmt.Errorf("failed to update progress: %w", err)
	}

	if epoch != vm.epoch {
		return err
	}

	if err == nil && seq > st.confirmedSeq {
		st.confirmed = target == models.CompletePercent
		st.confirmedSeq = seq
	}

	switch {
	case seq == st.latest:
		st.resolved = true
		if err != nil {
			vm.setCompleted(contentID, st.confirmed)
		}
	case st.resolved:
		// A newer toggle already settled; show whatever the server last accepted
		vm.setCompleted(contentID, st.confirmed)
	}

	return err
}

// ProgressPercentage returns round(100 * completed / total), or 0 for a course without content
func (vm *ProgressViewModel) ProgressPercentage() int {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return percentage(vm.completedCount(), len(vm.items))
}

// IsCompleted reports whether contentID is displayed as completed
func (vm *ProgressViewModel) IsCompleted(contentID int64) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	_, ok := vm.completed[contentID]
	return ok && vm.hasItem(contentID)
}

// CompletedIDs returns the completed content ids in display order
func (vm *ProgressViewModel) CompletedIDs() []int64 {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	ids := make([]int64, 0, len(vm.completed))
	for _, item := range vm.items {
		if _, ok := vm.completed[item.ID]; ok {
			ids = append(ids, item.ID)
		}
	}
	return ids
}

// Items returns a copy of the content items in display order
func (vm *ProgressViewModel) Items() []models.ContentItem {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	return slices.Clone(vm.items)
}

// Snapshot renders the current state as a course view without course metadata
func (vm *ProgressViewModel) Snapshot() *models.CourseView {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	lessons := make([]models.LessonView, 0, len(vm.items))
	for _, item := range vm.items {
		_, done := vm.completed[item.ID]
		lessons = append(lessons, models.LessonView{
			ContentItem: item,
			Completed:   done,
			Icon:        item.ContentType.Icon(),
			Badge:       item.ContentType.Badge(),
		})
	}

	completed := vm.completedCount()
	return &models.CourseView{
		Lessons:            lessons,
		CompletedCount:     completed,
		TotalCount:         len(vm.items),
		ProgressPercentage: percentage(completed, len(vm.items)),
	}
}

func (vm *ProgressViewModel) hasItem(contentID int64) bool {
	return slices.ContainsFunc(vm.items, func(item models.ContentItem) bool {
		return item.ID == contentID
	})
}

func (vm *ProgressViewModel) setCompleted(contentID int64, completed bool) {
	if completed {
		vm.completed[contentID] = struct{}{}
	} else {
		delete(vm.completed, contentID)
	}
}

// completedCount counts completed ids that belong to the current content list
func (vm *ProgressViewModel) completedCount() int {
	n := 0
	for _, item := range vm.items {
		if _, ok := vm.completed[item.ID]; ok {
			n++
		}
	}
	return n
}

func sortByOrder(items []models.ContentItem) []models.ContentItem {
	sorted := slices.Clone(items)
	if sorted == nil {
		sorted = []models.ContentItem{}
	}
	slices.SortStableFunc(sorted, func(a, b models.ContentItem) int {
		return cmp.Compare(a.OrderIndex, b.OrderIndex)
	})
	return sorted
}

func completionSet(records []models.ProgressRecord) map[int64]struct{} {
	set := make(map[int64]struct{}, len(records))
	for _, r := range records {
		if r.IsComplete() {
			set[r.ContentID] = struct{}{}
		}
	}
	return set
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}
