package models

// Course represents course metadata
type Course struct {
	ID              int64         `json:"id"`
	Title           string        `json:"title"`
	Description     string        `json:"description"`
	CreatedAt       string        `json:"createdAt,omitempty"`
	UpdatedAt       string        `json:"updatedAt,omitempty"`
	InstructorName  string        `json:"instructorName,omitempty"`
	InstructorEmail string        `json:"instructorEmail,omitempty"`
	Contents        []ContentItem `json:"contents,omitempty"`
}

// CreateCourseRequest represents a request to create a course
type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"max=2000"`
}
