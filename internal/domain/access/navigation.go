package access

import (
	"strings"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
)

type NavItem struct {
	Label  string
	Icon   string
	Href   string
	Active bool
}

type navEntry struct {
	label     string
	icon      string
	suffix    string
	exact     bool
	adminOnly bool
	requires  identity.Permission
}

var navEntries = []navEntry{
	{label: "Agendamentos", icon: "calendar", suffix: "", exact: true, requires: identity.PermissionAppointments},
	{label: "Logs", icon: "list-check", suffix: "/logs", requires: identity.PermissionLogs},
	{label: "Usuários", icon: "users", suffix: "/users", adminOnly: true},
	{label: "Minha Conta", icon: "user", suffix: "/profile"},
}

// Navigation returns the sidebar entries visible to p, marking the one
// matching currentPath.
func Navigation(p identity.Principal, currentPath string) []NavItem {
	path := cleanPath(currentPath)

	items := make([]NavItem, 0, len(navEntries))
	for _, e := range navEntries {
		if e.adminOnly && !p.IsAdmin() {
			continue
		}
		if e.requires != "" && !p.Can(e.requires) {
			continue
		}

		href := p.Home() + e.suffix
		active := path == href
		if !e.exact {
			active = active || strings.HasPrefix(path, href+"/")
		}

		items = append(items, NavItem{
			Label:  e.label,
			Icon:   e.icon,
			Href:   href,
			Active: active,
		})
	}
	return items
}

type Header struct {
	Title    string
	Subtitle string
}

func HeaderFor(path string) Header {
	switch {
	case strings.Contains(path, "/logs"):
		return Header{Title: "Logs do Sistema", Subtitle: "Acompanhe todos os seus Logs"}
	case strings.Contains(path, "/profile"):
		return Header{Title: "Minha Conta", Subtitle: "Ajuste informações da sua conta de forma simples"}
	case strings.Contains(path, "/users"):
		return Header{Title: "Usuários", Subtitle: "Gerencie clientes, status e permissões"}
	}
	return Header{Title: "Agendamento", Subtitle: "Acompanhe todos os seus agendamentos de forma simples"}
}
