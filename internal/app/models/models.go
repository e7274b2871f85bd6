package models

import "strings"

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent RoleType = "STUDENT"
	RoleAdmin   RoleType = "ADMIN"
)

// ParseRole normalizes a role name; empty input defaults to RoleStudent
func ParseRole(role string) (RoleType, bool) {
	switch RoleType(strings.ToUpper(strings.TrimSpace(role))) {
	case "", RoleStudent:
		return RoleStudent, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}
