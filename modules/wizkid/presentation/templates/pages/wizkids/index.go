package wizkids

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/layouts"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/viewmodels"
)

const (
	ViewGrid  = "grid"
	ViewCards = "cards"
	ViewList  = "list"
)

type IndexProps struct {
	Wizkids []*viewmodels.Wizkid
	Query   string
	Role    string
	View    string
	Roles   []string
	// CanEdit hides all editing affordances for guest sessions.
	CanEdit      bool
	Greeting     string
	ErrorMessage string
}

func avatarHTML(w *viewmodels.Wizkid) string {
	if w.PhotoURL != "" {
		return `<img class="wizkid-photo" src="` + templ.EscapeString(w.PhotoURL) + `" alt="">`
	}
	return `<span class="wizkid-initials">` + templ.EscapeString(w.Initials) + `</span>`
}

func firedClass(w *viewmodels.Wizkid) string {
	if w.Fired {
		return " fired"
	}
	return ""
}

func firedBadge(w *viewmodels.Wizkid) string {
	if w.Fired {
		return `<span class="fired-badge">Fired</span>`
	}
	return ""
}

func editLink(props *IndexProps, w *viewmodels.Wizkid) string {
	if !props.CanEdit {
		return ""
	}
	return `<a class="wizkid-edit" href="/wizkids/` + w.ID + `/edit">Edit</a>`
}

func gridCard(props *IndexProps, w *viewmodels.Wizkid) string {
	return `<article class="wizkid` + firedClass(w) + `">` +
		avatarHTML(w) +
		`<h2 class="wizkid-name">` + templ.EscapeString(w.Name) + firedBadge(w) + `</h2>` +
		`<p class="wizkid-role">` + templ.EscapeString(w.Role) + `, ` + strconv.Itoa(w.Age) + `</p>` +
		`<p class="wizkid-meta">` + templ.EscapeString(w.Email) + `</p>` +
		`<p class="wizkid-meta">` + templ.EscapeString(w.Phone) + `</p>` +
		editLink(props, w) +
		`</article>`
}

func compactCard(props *IndexProps, w *viewmodels.Wizkid) string {
	return `<article class="wizkid` + firedClass(w) + `">` +
		avatarHTML(w) +
		`<h2 class="wizkid-name">` + templ.EscapeString(w.Name) + firedBadge(w) + `</h2>` +
		`<p class="wizkid-role">` + templ.EscapeString(w.Role) + `</p>` +
		editLink(props, w) +
		`</article>`
}

func listRow(props *IndexProps, w *viewmodels.Wizkid) string {
	return `<article class="wizkid` + firedClass(w) + `">` +
		`<span class="wizkid-name">` + templ.EscapeString(w.Name) + `</span> ` +
		firedBadge(w) +
		`<span class="wizkid-role">` + templ.EscapeString(w.Role) + `, ` + strconv.Itoa(w.Age) + `</span> ` +
		`<span class="wizkid-meta">` + templ.EscapeString(w.Email) + `</span>` +
		editLink(props, w) +
		`</article>`
}

func viewOption(props *IndexProps, view, label string) string {
	selected := ""
	if props.View == view {
		selected = ` selected`
	}
	return `<option value="` + view + `"` + selected + `>` + label + `</option>`
}

func roleOption(props *IndexProps, role string) string {
	selected := ""
	if props.Role == role {
		selected = ` selected`
	}
	return `<option value="` + templ.EscapeString(role) + `"` + selected + `>` +
		templ.EscapeString(role) + `</option>`
}

func Index(props *IndexProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			header := `<header class="header"><h1>Wizkid Manager 2000</h1>` +
				`<div><span class="header-greeting">Hi, ` + templ.EscapeString(props.Greeting) + `</span> `
			if props.CanEdit {
				header += `<a href="/account">Settings</a> ` +
					`<form method="post" action="/logout" style="display:inline">` +
					`<button type="submit" class="secondary">Sign out</button></form>`
			} else {
				header += `<a href="/login">Sign in</a>`
			}
			header += `</div></header>`
			if _, err := io.WriteString(w, header); err != nil {
				return err
			}

			toolbar := `<form class="toolbar" method="get" action="/wizkids">` +
				`<input type="search" name="q" placeholder="Search by name or email" value="` + templ.EscapeString(props.Query) + `">` +
				`<select name="role"><option value="">All roles</option>`
			for _, role := range props.Roles {
				toolbar += roleOption(props, role)
			}
			toolbar += `</select><select name="view">` +
				viewOption(props, ViewGrid, "Grid") +
				viewOption(props, ViewCards, "Cards") +
				viewOption(props, ViewList, "List") +
				`</select><button type="submit">Apply</button></form>`
			if _, err := io.WriteString(w, toolbar); err != nil {
				return err
			}

			if props.ErrorMessage != "" {
				_, err := io.WriteString(w, `<div class="error-state"><p>`+
					templ.EscapeString(props.ErrorMessage)+
					`</p><p>Check the database connection and migrations, then reload.</p></div>`)
				return err
			}
			if len(props.Wizkids) == 0 {
				_, err := io.WriteString(w, `<p class="empty-state">No wizkids match your filter.</p>`)
				return err
			}

			container := `<div class="wizkids-grid">`
			render := gridCard
			switch props.View {
			case ViewCards:
				container = `<div class="wizkids-cards">`
				render = compactCard
			case ViewList:
				container = `<div class="wizkids-list">`
				render = listRow
			}
			if _, err := io.WriteString(w, container); err != nil {
				return err
			}
			for _, wk := range props.Wizkids {
				if _, err := io.WriteString(w, render(props, wk)); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `</div>`)
			return err
		})

		return layouts.Base(&layouts.BaseProps{Title: "Wizkids"}).
			Render(templ.WithChildren(ctx, content), w)
	})
}
