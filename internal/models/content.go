package models

// ContentType represents the kind of material a content item carries
type ContentType string

const (
	// ContentTypeVideo represents a video lesson
	ContentTypeVideo ContentType = "VIDEO"
	// ContentTypePDF represents a PDF document
	ContentTypePDF ContentType = "PDF"
	// ContentTypeDoc represents any other document
	ContentTypeDoc ContentType = "DOC"
)

// Valid reports whether t is one of the known content types
func (t ContentType) Valid() bool {
	switch t {
	case ContentTypeVideo, ContentTypePDF, ContentTypeDoc:
		return true
	}
	return false
}

// Icon returns the icon name the view layer draws for t
func (t ContentType) Icon() string {
	switch t {
	case ContentTypeVideo:
		return "play-circle"
	case ContentTypePDF:
		return "file-pdf"
	default:
		return "file-text"
	}
}

// Badge returns the badge color the view layer draws for t
func (t ContentType) Badge() string {
	switch t {
	case ContentTypeVideo:
		return "purple"
	case ContentTypePDF:
		return "red"
	case ContentTypeDoc:
		return "blue"
	default:
		return "gray"
	}
}

// ContentItem represents one unit of course material
type ContentItem struct {
	ID          int64       `json:"id"`
	CourseID    int64       `json:"courseId,omitempty"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	ContentType ContentType `json:"contentType"`
	OrderIndex  int         `json:"orderIndex"`
	FileURL     string      `json:"fileUrl,omitempty"`
}

// UploadContentRequest represents the metadata sent with a content file upload
type UploadContentRequest struct {
	CourseID    int64       `json:"courseId" validate:"required,gt=0"`
	Title       string      `json:"title" validate:"required,notblank,max=255"`
	Description string      `json:"description" validate:"max=2000"`
	ContentType ContentType `json:"contentType" validate:"required,oneof=VIDEO PDF DOC"`
	OrderIndex  int         `json:"orderIndex" validate:"gte=0"`
	FileName    string      `json:"fileName" validate:"required"`
}
