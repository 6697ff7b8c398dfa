package models

// CompletePercent is the percentComplete value at which a content item counts as completed
const CompletePercent = 100

// ProgressRecord represents server-held completion of one content item by one student
type ProgressRecord struct {
	ID              int64   `json:"id,omitempty"`
	StudentEmail    string  `json:"studentEmail,omitempty"`
	CourseID        int64   `json:"courseId,omitempty"`
	ContentID       int64   `json:"contentId"`
	CourseTitle     string  `json:"courseTitle,omitempty"`
	ContentTitle    string  `json:"contentTitle,omitempty"`
	PercentComplete float64 `json:"percentComplete"`
	Completed       bool    `json:"completed,omitempty"`
}

// IsComplete reports whether the record marks its content item as completed
func (p ProgressRecord) IsComplete() bool {
	return p.PercentComplete >= CompletePercent
}

// UpdateProgressRequest represents a progress write sent to the remote API
type UpdateProgressRequest struct {
	StudentEmail    string `json:"studentEmail"`
	CourseID        int64  `json:"courseId"`
	ContentID       int64  `json:"contentId"`
	PercentComplete int    `json:"percentComplete"`
}
