// Package session manages browser sessions and reads identity hints from bearer tokens
package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/learnhub/lms-webclient/internal/models"
)

// Landing paths
const (
	LandingStudent = "/student"
	LandingTeacher = "/teacher"
	LandingAdmin   = "/admin"
)

// RoleFromToken reads the role claim of a bearer token without verifying its signature.
//
// The claim is looked up as "roles"[0], then "authorities"[0], then "role".
// Any decode failure yields an empty role. The result is only a routing hint:
// the remote API enforces authorization on every call.
func RoleFromToken(token string) string {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return ""
	}

	if role := firstString(claims["roles"]); role != "" {
		return role
	}
	if role := firstString(claims["authorities"]); role != "" {
		return role
	}
	if role, ok := claims["role"].(string); ok {
		return role
	}
	return ""
}

// LandingPath returns the page a user with role lands on after login
func LandingPath(role string) string {
	switch role {
	case models.RoleTeacher:
		return LandingTeacher
	case models.RoleAdmin:
		return LandingAdmin
	default:
		return LandingStudent
	}
}

// firstString returns the first element of a claim holding a list of strings.
// Spring authorities may be encoded as {"authority": "..."} objects.
func firstString(claim any) string {
	list, ok := claim.([]any)
	if !ok || len(list) == 0 {
		return ""
	}
	switch v := list[0].(type) {
	case string:
		return v
	case map[string]any:
		if s, ok := v["authority"].(string); ok {
			return s
		}
	}
	return ""
}
