package repositories

import (
	"context"
	"io"
	"strconv"

	"github.com/learnhub/lms-webclient/internal/models"
)

type contentRepository struct {
	api *APIClient
}

// NewContentRepository creates a repository for course content
func NewContentRepository(api *APIClient) *contentRepository {
	return &contentRepository{api: api}
}

// ListByCourse retrieves the content items of a course in the order the API returns them
func (r *contentRepository) ListByCourse(ctx context.Context, courseID int64) ([]models.ContentItem, error) {
	var items []models.ContentItem
	resp, err := r.api.request(ctx).
		SetQueryParam("courseId", strconv.FormatInt(courseID, 10)).
		SetResult(&items).
		Get("/contents")
	if err := r.api.check("list course contents", resp, err); err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.ContentItem{}
	}
	return items, nil
}

// Upload sends a content file together with its metadata as a multipart form.
// The created item carries the URL the file is served from.
func (r *contentRepository) Upload(ctx context.Context, req *models.UploadContentRequest, file io.Reader) (*models.ContentItem, error) {
	var item models.ContentItem
	resp, err := r.api.request(ctx).
		SetMultipartFormData(map[string]string{
			"courseId":    strconv.FormatInt(req.CourseID, 10),
			"title":       req.Title,
			"description": req.Description,
			"contentType": string(req.ContentType),
			"orderIndex":  strconv.Itoa(req.OrderIndex),
		}).
		SetFileReader("file", req.FileName, file).
		SetResult(&item).
		Post("/contents/upload")
	if err := r.api.check("upload content", resp, err); err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes a content item
func (r *contentRepository) Delete(ctx context.Context, contentID int64) error {
	resp, err := r.api.request(ctx).
		SetPathParam("id", strconv.FormatInt(contentID, 10)).
		Delete("/contents/{id}")
	return r.api.check("delete content", resp, err)
}
