package models

// Enrollment represents a student's registration in a course with its server-computed progress
type Enrollment struct {
	ID                 int64   `json:"id"`
	CourseID           int64   `json:"courseId"`
	CourseTitle        string  `json:"courseTitle"`
	StudentEmail       string  `json:"studentEmail,omitempty"`
	StudentName        string  `json:"studentName,omitempty"`
	Status             string  `json:"status,omitempty"`
	ProgressPercentage float64 `json:"progressPercentage"`
}

// UpdateEnrollmentStatusRequest represents an admin request to change an enrollment status
type UpdateEnrollmentStatusRequest struct {
	Status string `json:"status" validate:"required,max=50"`
}
