package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/learnhub/lms-webclient/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "test-token"

// setupTestAPI creates an API client talking to a test server serving handler
func setupTestAPI(t *testing.T, handler http.HandlerFunc) (*APIClient, func()) {
	t.Helper()
	srv := httptest.NewServer(handler)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	api := NewAPIClient(NewRestClient(srv.URL+"/api", 5*time.Second), testToken, logger)

	return api, srv.Close
}

// writeJSON writes a JSON response in test handlers
func writeJSON(t *testing.T, w http.ResponseWriter, status int, data any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(data))
}

func TestNewAPIClient(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	rest := NewRestClient("http://localhost/api/", time.Second)

	api := NewAPIClient(rest, testToken, logger)

	assert.NotNil(t, api)
	assert.Equal(t, rest, api.rest)
	assert.Equal(t, testToken, api.token)
	assert.Equal(t, "http://localhost/api", rest.BaseURL)
}

func TestAPIClient_Errors(t *testing.T) {
	tests := []struct {
		name            string
		handler         http.HandlerFunc
		expectedStatus  int
		expectedMessage string
	}{
		{
			name: "json error message",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusNotFound, map[string]any{"status": 404, "message": "Course not found"})
			},
			expectedStatus:  http.StatusNotFound,
			expectedMessage: "Course not found",
		},
		{
			name: "json error field",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, http.StatusForbidden, map[string]any{"error": "Forbidden"})
			},
			expectedStatus:  http.StatusForbidden,
			expectedMessage: "Forbidden",
		},
		{
			name: "plain text body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte("Invalid credentials"))
			},
			expectedStatus:  http.StatusUnauthorized,
			expectedMessage: "Invalid credentials",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, cleanup := setupTestAPI(t, tt.handler)
			defer cleanup()
			repo := NewCourseRepository(api)

			course, err := repo.GetByID(context.Background(), 1)

			assert.Nil(t, course)
			require.Error(t, err)
			assert.True(t, IsStatus(err, tt.expectedStatus))
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.expectedMessage, apiErr.Message)
		})
	}
}

func TestAPIClient_TransportError(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {})
	cleanup()
	repo := NewContentRepository(api)

	items, err := repo.ListByCourse(context.Background(), 1)

	assert.Nil(t, items)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestAPIClient_AnonymousRequest(t *testing.T) {
	var authHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader = r.Header.Get("Authorization")
		writeJSON(t, w, http.StatusOK, []models.Course{})
	}))
	defer srv.Close()
	logger, _ := zap.NewDevelopment()
	api := NewAPIClient(NewRestClient(srv.URL, time.Second), "", logger)

	_, err := NewCourseRepository(api).List(context.Background())

	require.NoError(t, err)
	assert.Empty(t, authHeader)
}

func TestContentRepository_ListByCourse(t *testing.T) {
	tests := []struct {
		name          string
		handler       func(t *testing.T) http.HandlerFunc
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			handler: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					assert.Equal(t, http.MethodGet, r.Method)
					assert.Equal(t, "/api/contents", r.URL.Path)
					assert.Equal(t, "7", r.URL.Query().Get("courseId"))
					assert.Equal(t, "Bearer "+testToken, r.Header.Get("Authorization"))
					writeJSON(t, w, http.StatusOK, []models.ContentItem{
						{ID: 1, Title: "Intro", ContentType: models.ContentTypeVideo, OrderIndex: 2},
						{ID: 2, Title: "Slides", ContentType: models.ContentTypePDF, OrderIndex: 1, FileURL: "http://files/slides.pdf"},
					})
				}
			},
			expectedCount: 2,
		},
		{
			name: "null body",
			handler: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.Write([]byte("null"))
				}
			},
			expectedCount: 0,
		},
		{
			name: "server error",
			handler: func(t *testing.T) http.HandlerFunc {
				return func(w http.ResponseWriter, r *http.Request) {
					writeJSON(t, w, http.StatusInternalServerError, map[string]string{"message": "boom"})
				}
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, cleanup := setupTestAPI(t, tt.handler(t))
			defer cleanup()
			repo := NewContentRepository(api)

			items, err := repo.ListByCourse(context.Background(), 7)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, items)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.expectedCount)
		})
	}
}

func TestContentRepository_Upload(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/contents/upload", r.URL.Path)
		assert.True(t, strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data"))
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "3", r.FormValue("courseId"))
		assert.Equal(t, "Week 1", r.FormValue("title"))
		assert.Equal(t, "Basics", r.FormValue("description"))
		assert.Equal(t, "PDF", r.FormValue("contentType"))
		assert.Equal(t, "4", r.FormValue("orderIndex"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		body, _ := io.ReadAll(file)
		assert.Equal(t, "week1.pdf", header.Filename)
		assert.Equal(t, "pdf-bytes", string(body))

		writeJSON(t, w, http.StatusOK, models.ContentItem{
			ID: 11, Title: "Week 1", ContentType: models.ContentTypePDF, OrderIndex: 4, FileURL: "http://files/week1.pdf",
		})
	})
	defer cleanup()
	repo := NewContentRepository(api)

	item, err := repo.Upload(context.Background(), &models.UploadContentRequest{
		CourseID:    3,
		Title:       "Week 1",
		Description: "Basics",
		ContentType: models.ContentTypePDF,
		OrderIndex:  4,
		FileName:    "week1.pdf",
	}, strings.NewReader("pdf-bytes"))

	require.NoError(t, err)
	assert.Equal(t, int64(11), item.ID)
	assert.Equal(t, "http://files/week1.pdf", item.FileURL)
}

func TestContentRepository_Delete(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		expectedError bool
	}{
		{name: "no content", status: http.StatusNoContent},
		{name: "ok with body", status: http.StatusOK},
		{name: "not found", status: http.StatusNotFound, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/contents/9", r.URL.Path)
				w.WriteHeader(tt.status)
			})
			defer cleanup()

			err := NewContentRepository(api).Delete(context.Background(), 9)

			if tt.expectedError {
				assert.True(t, IsStatus(err, tt.status))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestProgressRepository_ListByCourse(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/progress", r.URL.Path)
		assert.Equal(t, "student@example.com", r.URL.Query().Get("studentEmail"))
		assert.Equal(t, "5", r.URL.Query().Get("courseId"))
		writeJSON(t, w, http.StatusOK, []map[string]any{
			{"id": 1, "contentId": 1, "percentComplete": 100, "completed": true},
			{"id": 2, "contentId": 2, "percentComplete": 40},
		})
	})
	defer cleanup()

	records, err := NewProgressRepository(api).ListByCourse(context.Background(), "student@example.com", 5)

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].IsComplete())
	assert.False(t, records[1].IsComplete())
	assert.Equal(t, 40.0, records[1].PercentComplete)
}

func TestProgressRepository_Update(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/progress/update", r.URL.Path)

		var req models.UpdateProgressRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, models.UpdateProgressRequest{
			StudentEmail: "student@example.com", CourseID: 5, ContentID: 3, PercentComplete: 100,
		}, req)

		writeJSON(t, w, http.StatusOK, map[string]any{"id": 8, "contentId": 3, "percentComplete": 100, "completed": true})
	})
	defer cleanup()

	record, err := NewProgressRepository(api).Update(context.Background(), models.UpdateProgressRequest{
		StudentEmail: "student@example.com", CourseID: 5, ContentID: 3, PercentComplete: 100,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), record.ContentID)
	assert.True(t, record.Completed)
}

func TestCourseRepository(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses/4":
			writeJSON(t, w, http.StatusOK, map[string]any{"id": 4, "title": "Go", "createdAt": "2024-05-01T10:00:00"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses":
			writeJSON(t, w, http.StatusOK, []models.Course{{ID: 4, Title: "Go"}, {ID: 5, Title: "SQL"}})
		case r.Method == http.MethodGet && r.URL.Path == "/api/courses/instructor":
			assert.Equal(t, "teacher@example.com", r.URL.Query().Get("email"))
			writeJSON(t, w, http.StatusOK, []models.Course{{ID: 4, Title: "Go"}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/courses":
			assert.Equal(t, "teacher@example.com", r.URL.Query().Get("instructorEmail"))
			var req models.CreateCourseRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			writeJSON(t, w, http.StatusOK, models.Course{ID: 6, Title: req.Title, Description: req.Description})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer cleanup()
	repo := NewCourseRepository(api)
	ctx := context.Background()

	course, err := repo.GetByID(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, "Go", course.Title)
	assert.Equal(t, "2024-05-01T10:00:00", course.CreatedAt)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := repo.ListByInstructor(ctx, "teacher@example.com")
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	created, err := repo.Create(ctx, "teacher@example.com", &models.CreateCourseRequest{Title: "Rust", Description: "Ownership"})
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.ID)
	assert.Equal(t, "Ownership", created.Description)
}

func TestEnrollmentRepository(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/enrollments/student":
			assert.Equal(t, "student@example.com", r.URL.Query().Get("email"))
			writeJSON(t, w, http.StatusOK, []models.Enrollment{{ID: 1, CourseID: 4, CourseTitle: "Go", ProgressPercentage: 50}})
		case r.Method == http.MethodPost && r.URL.Path == "/api/enrollments":
			assert.Equal(t, "student@example.com", r.URL.Query().Get("studentEmail"))
			assert.Equal(t, "4", r.URL.Query().Get("courseId"))
			writeJSON(t, w, http.StatusOK, map[string]any{"id": 2, "status": "ACTIVE", "course": map[string]any{"id": 4}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer cleanup()
	repo := NewEnrollmentRepository(api)

	enrollments, err := repo.ListByStudent(context.Background(), "student@example.com")
	require.NoError(t, err)
	require.Len(t, enrollments, 1)
	assert.Equal(t, 50.0, enrollments[0].ProgressPercentage)

	enrollment, err := repo.Enroll(context.Background(), "student@example.com", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(2), enrollment.ID)
	assert.Equal(t, "ACTIVE", enrollment.Status)
}

func TestAuthRepository_Login(t *testing.T) {
	tests := []struct {
		name          string
		body          string
		status        int
		expectedToken string
		expectedError bool
	}{
		{name: "raw token", body: "header.payload.sig", status: http.StatusOK, expectedToken: "header.payload.sig"},
		{name: "quoted token", body: `"header.payload.sig"`, status: http.StatusOK, expectedToken: "header.payload.sig"},
		{name: "invalid credentials", body: "Invalid credentials", status: http.StatusUnauthorized, expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/auth/login", r.URL.Path)
				var req models.LoginRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
				assert.Equal(t, "user@example.com", req.Email)
				w.Header().Set("Content-Type", "text/plain")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})
			defer cleanup()

			token, err := NewAuthRepository(api).Login(context.Background(), &models.LoginRequest{Email: "user@example.com", Password: "secret"})

			if tt.expectedError {
				assert.True(t, IsStatus(err, tt.status))
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedToken, token)
		})
	}
}

func TestAuthRepository_Register(t *testing.T) {
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/register", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["fullName"])
		assert.Equal(t, []any{models.RoleTeacher}, body["roles"])
		_, hasAvatar := body["avatarUrl"]
		assert.False(t, hasAvatar)
		writeJSON(t, w, http.StatusOK, models.User{ID: 3, FullName: "Ada", Email: "ada@example.com", Roles: []string{models.RoleTeacher}})
	})
	defer cleanup()

	user, err := NewAuthRepository(api).Register(context.Background(), &models.RegisterRequest{
		FullName: "Ada", Email: "ada@example.com", Password: "secret1", Roles: []string{models.RoleTeacher},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
}

func TestAdminRepository(t *testing.T) {
	var calls []string
	api, cleanup := setupTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)
		switch r.Method + " " + r.URL.Path {
		case "GET /api/admin/users":
			writeJSON(t, w, http.StatusOK, []models.User{{ID: 1}})
		case "GET /api/admin/courses":
			writeJSON(t, w, http.StatusOK, []models.Course{{ID: 1}, {ID: 2}})
		case "GET /api/admin/enrollments":
			writeJSON(t, w, http.StatusOK, []models.Enrollment{})
		case "POST /api/admin/users/1/role":
			writeJSON(t, w, http.StatusOK, models.User{ID: 1, Roles: []string{models.RoleAdmin}})
		case "DELETE /api/admin/users/1", "DELETE /api/admin/courses/2":
			w.WriteHeader(http.StatusOK)
		case "PUT /api/admin/enrollments/5/status":
			writeJSON(t, w, http.StatusOK, models.Enrollment{ID: 5, Status: r.URL.Query().Get("status")})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
	defer cleanup()
	repo := NewAdminRepository(api)
	ctx := context.Background()

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)

	courses, err := repo.ListCourses(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 2)

	enrollments, err := repo.ListEnrollments(ctx)
	require.NoError(t, err)
	assert.Empty(t, enrollments)

	user, err := repo.AssignRole(ctx, 1, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, []string{models.RoleAdmin}, user.Roles)

	require.NoError(t, repo.DeleteUser(ctx, 1))
	require.NoError(t, repo.DeleteCourse(ctx, 2))

	enrollment, err := repo.UpdateEnrollmentStatus(ctx, 5, "COMPLETED")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", enrollment.Status)

	assert.Contains(t, calls, "POST /api/admin/users/1/role?roleName=ROLE_ADMIN")
	assert.Contains(t, calls, "PUT /api/admin/enrollments/5/status?status=COMPLETED")
}
