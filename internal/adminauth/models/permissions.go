package models

import (
	"encoding/json"
	"slices"
	"sort"
)

// Permission is a named capability checked by the authorization guard.
type Permission string

const (
	PermTimelineRead   Permission = "timeline.read"
	PermTimelineCreate Permission = "timeline.create"
	PermTimelineUpdate Permission = "timeline.update"
	PermTimelineDelete Permission = "timeline.delete"

	PermAdminRead   Permission = "admin.read"
	PermAdminCreate Permission = "admin.create"
	PermAdminUpdate Permission = "admin.update"
	PermAdminDelete Permission = "admin.delete"

	PermManageAdmins   Permission = "can_manage_admins"
	PermAccessAllData  Permission = "can_access_all_data"
	PermManageTimeline Permission = "can_manage_timeline"
	PermViewBasicData  Permission = "can_view_basic_data"

	PermFeedbackModerate Permission = "feedback.moderate"
	PermChecklistManage  Permission = "checklist.manage"
)

var allPermissions = []Permission{
	PermTimelineRead, PermTimelineCreate, PermTimelineUpdate, PermTimelineDelete,
	PermAdminRead, PermAdminCreate, PermAdminUpdate, PermAdminDelete,
	PermManageAdmins, PermAccessAllData, PermManageTimeline, PermViewBasicData,
	PermFeedbackModerate, PermChecklistManage,
}

// AllPermissions returns every known permission.
func AllPermissions() []Permission {
	return slices.Clone(allPermissions)
}

// IsKnown reports whether p is one of the declared constants.
func (p Permission) IsKnown() bool {
	return slices.Contains(allPermissions, p)
}

var staffPermissions = []Permission{PermTimelineRead, PermViewBasicData}

// roleTable is the single authoritative role -> permissions mapping.
// Every entry is non-empty.
var roleTable = map[Role][]Permission{
	RoleSuperAdmin: allPermissions,
	RoleAdmin: {
		PermAdminRead, PermAdminCreate, PermAdminUpdate,
		PermTimelineRead, PermTimelineCreate, PermTimelineUpdate, PermTimelineDelete,
		PermAccessAllData, PermManageTimeline, PermViewBasicData,
		PermFeedbackModerate, PermChecklistManage,
	},
	RoleManager: {
		PermAdminRead,
		PermTimelineRead, PermTimelineCreate, PermTimelineUpdate,
		PermAccessAllData, PermManageTimeline, PermViewBasicData,
		PermFeedbackModerate, PermChecklistManage,
	},
	RoleFinanceManager: {PermTimelineRead, PermAccessAllData, PermViewBasicData},
	RoleStaff:          staffPermissions,
}

// PermissionSet is an unordered set of permissions. It marshals to a sorted
// JSON array of strings.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny reports whether the set contains at least one of required.
// An empty required list is always satisfied.
func (s PermissionSet) HasAny(required ...Permission) bool {
	if len(required) == 0 {
		return true
	}
	for _, p := range required {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// Strings returns the members sorted lexically.
func (s PermissionSet) Strings() []string {
	out := make([]string, 0, len(s))
	for p := range s {
		out = append(out, string(p))
	}
	sort.Strings(out)
	return out
}

func (s PermissionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Strings())
}

// DefaultPermissionsFor returns the role's permission list; unrecognized
// roles get the staff list.
func DefaultPermissionsFor(role Role) PermissionSet {
	perms, ok := roleTable[role]
	if !ok {
		perms = staffPermissions
	}
	return NewPermissionSet(perms...)
}

// ResolvePermissions derives the effective set for an admin. A non-empty
// explicit map wins outright: its true-valued keys are the set, unknown
// names included. Otherwise the role table applies.
func ResolvePermissions(a *Admin) PermissionSet {
	if a == nil {
		return NewPermissionSet()
	}
	if len(a.Permissions) > 0 {
		set := make(PermissionSet, len(a.Permissions))
		for name, granted := range a.Permissions {
			if granted {
				set[Permission(name)] = struct{}{}
			}
		}
		return set
	}
	return DefaultPermissionsFor(a.Role)
}

// ToStrings converts permissions to plain strings, preserving order.
func ToStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
