package utils

import "strings"

// MatchesPermission checks if a user permission matches the required
// permission. Supports wildcard patterns:
//
//   - "*:*" or "*" matches everything (admin wildcard)
//   - "work:*" matches all actions on the work resource
//   - "*:read" matches read on all resources
//   - "work:create" exact match
//
// Permission format: "resource:action".
func MatchesPermission(userPerm, requiredPerm string) bool {
	if userPerm == requiredPerm {
		return true
	}

	if userPerm == "*:*" || userPerm == "*" {
		return true
	}

	userParts := strings.Split(userPerm, ":")
	reqParts := strings.Split(requiredPerm, ":")

	if len(userParts) < 2 || len(reqParts) < 2 {
		return userPerm == requiredPerm
	}

	resourceMatch := userParts[0] == "*" || userParts[0] == reqParts[0]
	actionMatch := userParts[1] == "*" || userParts[1] == reqParts[1]

	return resourceMatch && actionMatch
}

// RolePermissions is the static grant table for the closed role set. Staff
// roles all read the operational collections; write access mirrors the
// affordances the dashboard exposes per role.
var RolePermissions = map[string][]string{
	"admin":      {"*:*"},
	"site_agent": {"*:read", "work:create", "work:update", "labour:create", "site_visit:create", "finance:create", "equipment:assign", "file:upload"},
	"engineer":   {"*:read", "labour:create", "site_visit:create", "file:upload"},
	"foreman":    {"*:read", "labour:create"},
	"driver_operator": {"*:read"},
	"mason":           {"*:read"},
	"casual":          {"*:read"},
	"client": {"work:read", "finance:read", "timeline:read", "site_visit:read", "notification:read", "notification:update"},
}

// HasPermission reports whether role grants the required permission.
func HasPermission(role, required string) bool {
	for _, perm := range RolePermissions[role] {
		if MatchesPermission(perm, required) {
			return true
		}
	}
	return false
}
