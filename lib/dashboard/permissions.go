// Copyright 2026 The Postapp Authors
// SPDX-License-Identifier: Apache-2.0

package dashboard

import "github.com/FahadRazzaq1121/postapp/lib/api"

// CanCreateUser reports whether role sees the Create User action.
func CanCreateUser(role api.Role) bool {
	return role == api.RoleSuperAdmin || role == api.RoleAdmin
}

// CanEditUser reports whether role may edit other users.
func CanEditUser(role api.Role) bool { return role == api.RoleSuperAdmin }

// CanDeleteUser reports whether role may delete users.
func CanDeleteUser(role api.Role) bool { return role == api.RoleSuperAdmin }

// CanManagePosts reports whether role may create and delete posts.
func CanManagePosts(role api.Role) bool { return role.Valid() }

// AssignableRoles lists the roles role may give to a user it creates
// or edits.
func AssignableRoles(role api.Role) []api.Role {
	switch role {
	case api.RoleSuperAdmin:
		return []api.Role{api.RoleSuperAdmin, api.RoleAdmin, api.RoleUser}
	case api.RoleAdmin:
		return []api.Role{api.RoleUser}
	}
	return nil
}
