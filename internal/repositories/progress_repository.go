package repositories

import (
	"context"
	"strconv"

	"github.com/learnhub/lms-webclient/internal/models"
)

type progressRepository struct {
	api *APIClient
}

// NewProgressRepository creates a repository for per-lesson progress records
func NewProgressRepository(api *APIClient) *progressRepository {
	return &progressRepository{api: api}
}

// ListByCourse retrieves the progress records of a student in a course
func (r *progressRepository) ListByCourse(ctx context.Context, studentEmail string, courseID int64) ([]models.ProgressRecord, error) {
	var records []models.ProgressRecord
	resp, err := r.api.request(ctx).
		SetQueryParams(map[string]string{
			"studentEmail": studentEmail,
			"courseId":     strconv.FormatInt(courseID, 10),
		}).
		SetResult(&records).
		Get("/progress")
	if err := r.api.check("fetch course progress", resp, err); err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.ProgressRecord{}
	}
	return records, nil
}

// Update writes the completion percentage of one content item
func (r *progressRepository) Update(ctx context.Context, req models.UpdateProgressRequest) (*models.ProgressRecord, error) {
	var record models.ProgressRecord
	resp, err := r.api.request(ctx).
		SetBody(req).
		SetResult(&record).
		Post("/progress/update")
	if err := r.api.check("update progress", resp, err); err != nil {
		return nil, err
	}
	return &record, nil
}
