package models

// NoticeError is the level of a notice reporting a failed request
const NoticeError = "error"

// noticeDismissSeconds is how long the view layer shows a notice
const noticeDismissSeconds = 5

// Notice is a user-visible, auto-dismissing message
type Notice struct {
	Message             string `json:"message"`
	Level               string `json:"level"`
	DismissAfterSeconds int    `json:"dismissAfterSeconds"`
}

// NewErrorNotice creates an error notice with the default dismiss delay
func NewErrorNotice(message string) *Notice {
	return &Notice{Message: message, Level: NoticeError, DismissAfterSeconds: noticeDismissSeconds}
}

// LessonView represents a content item as displayed inside a course view
type LessonView struct {
	ContentItem
	Completed bool   `json:"completed"`
	Icon      string `json:"icon"`
	Badge     string `json:"badge"`
}

// CourseView represents the rendered state of a course a student is viewing
type CourseView struct {
	Course             *Course      `json:"course,omitempty"`
	Lessons            []LessonView `json:"lessons"`
	CompletedCount     int          `json:"completedCount"`
	TotalCount         int          `json:"totalCount"`
	ProgressPercentage int          `json:"progressPercentage"`
	Notice             *Notice      `json:"notice,omitempty"`
}

// StudentDashboard represents the student home page
type StudentDashboard struct {
	Enrollments       []Enrollment `json:"enrollments"`
	Courses           []Course     `json:"courses"`
	EnrolledCourseIDs []int64      `json:"enrolledCourseIds"`
	Notice            *Notice      `json:"notice,omitempty"`
}

// AdminOverview represents the admin dashboard tables
type AdminOverview struct {
	Users       []User       `json:"users"`
	Courses     []Course     `json:"courses"`
	Enrollments []Enrollment `json:"enrollments"`
}
