// Package authz is the single authorization policy consulted by every
// role-gated operation. Handlers never compare role strings directly.
package authz

import "koyomi/internal/models"

type Permission string

const (
	ManageEvents     Permission = "events:manage"
	ManageUsers      Permission = "users:manage"
	ViewDashboard    Permission = "dashboard:view"
	ModerateComments Permission = "comments:moderate"
)

var policy = map[Permission][]string{
	ManageEvents:     {models.RoleAdmin, models.RoleEditor},
	ManageUsers:      {models.RoleAdmin},
	ViewDashboard:    {models.RoleAdmin},
	ModerateComments: {models.RoleAdmin, models.RoleModerator},
}

// Allow reports whether a user with the given role holds the permission.
func Allow(role string, perm Permission) bool {
	for _, allowed := range policy[perm] {
		if role == allowed {
			return true
		}
	}
	return false
}
