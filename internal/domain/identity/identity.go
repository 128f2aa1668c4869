package identity

import "strings"

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type Permission string

const (
	PermissionAppointments Permission = "APPOINTMENTS"
	PermissionLogs         Permission = "LOGS"
)

// AllPermissions lists the grantable permissions in display order.
var AllPermissions = []Permission{PermissionAppointments, PermissionLogs}

// DefaultPermissions is what a self-registered user starts with.
var DefaultPermissions = []Permission{PermissionAppointments}

func (p Permission) Label() string {
	switch p {
	case PermissionAppointments:
		return "Agendamentos"
	case PermissionLogs:
		return "Logs"
	}
	return string(p)
}

func ParsePermission(raw string) (Permission, bool) {
	p := Permission(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range AllPermissions {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// NormalizePermissions drops unknown and duplicated entries, keeping the
// canonical order of AllPermissions.
func NormalizePermissions(raw []string) ([]Permission, bool) {
	seen := make(map[Permission]bool, len(raw))
	for _, r := range raw {
		p, ok := ParsePermission(r)
		if !ok {
			return nil, false
		}
		seen[p] = true
	}

	out := make([]Permission, 0, len(seen))
	for _, p := range AllPermissions {
		if seen[p] {
			out = append(out, p)
		}
	}
	return out, true
}

func PermissionStrings(perms []Permission) []string {
	out := make([]string, 0, len(perms))
	for _, p := range perms {
		out = append(out, string(p))
	}
	return out
}

// Principal is the identity asserted by a session token.
type Principal struct {
	ID          string
	Role        Role
	Permissions []Permission
	IsActive    bool
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Has reports whether the permission was granted explicitly.
func (p Principal) Has(perm Permission) bool {
	for _, granted := range p.Permissions {
		if granted == perm {
			return true
		}
	}
	return false
}

// Can is Has with the admin bypass applied.
func (p Principal) Can(perm Permission) bool {
	return p.IsAdmin() || p.Has(perm)
}

func (p Principal) Home() string {
	return "/dashboard/" + p.ID
}

func (p Principal) ProfilePath() string {
	return p.Home() + "/profile"
}

func (r Role) Label() string {
	if r == RoleAdmin {
		return "Administrador"
	}
	return "Cliente"
}
