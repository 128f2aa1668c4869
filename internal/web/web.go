// Package web holds the server-rendered pages of the dashboard.
package web

import (
	"embed"
	"html/template"
	"net/url"
	"strings"
	"time"

	"github.com/BruksfildServices01/room-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/room-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/room-scheduler/internal/timezone"
)

//go:embed templates/*.html
var templateFiles embed.FS

// Templates parses every embedded page. A parse failure is a bug in the
// embedded files, so it panics.
func Templates() *template.Template {
	return template.Must(
		template.New("pages").Funcs(funcs).ParseFS(templateFiles, "templates/*.html"),
	)
}

var funcs = template.FuncMap{
	"date":  timezone.FormatDate,
	"clock": timezone.FormatClock,
	"datetime": func(t time.Time) string {
		return timezone.FormatDate(t) + " " + timezone.FormatClock(t)
	},
	"has": func(list []string, v string) bool {
		for _, item := range list {
			if item == v {
				return true
			}
		}
		return false
	},
	"query": func(base url.Values, key, value string) string {
		out := url.Values{}
		for k, v := range base {
			out[k] = append([]string(nil), v...)
		}
		out.Set(key, value)
		return "?" + out.Encode()
	},
	"add":   func(a, b int) int { return a + b },
	"upper": strings.ToUpper,
}

// Layout is the shell shared by every dashboard page.
type Layout struct {
	Principal identity.Principal
	Nav       []access.NavItem
	Header    access.Header
	Path      string
	Notice    string
	Error     string
}

func NewLayout(p identity.Principal, path string) Layout {
	return Layout{
		Principal: p,
		Nav:       access.Navigation(p, path),
		Header:    access.HeaderFor(path),
		Path:      path,
	}
}

// Permissions lists the grantable permissions for the users page.
func Permissions() []identity.Permission {
	return identity.AllPermissions
}
