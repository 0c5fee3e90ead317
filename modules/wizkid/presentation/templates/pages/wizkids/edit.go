package wizkids

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/layouts"
	"github.com/owow-nl/wizkid-manager/modules/wizkid/presentation/viewmodels"
)

type EditProps struct {
	Wizkid *viewmodels.Wizkid
	Roles  []string
	// CanFire shows the fire/rehire entry point; only a Boss gets it.
	CanFire      bool
	ErrorMessage string
	ErrorsMap    map[string]string
}

func editFieldError(props *EditProps, field string) string {
	if props.ErrorsMap == nil {
		return ""
	}
	msg, ok := props.ErrorsMap[field]
	if !ok {
		return ""
	}
	return `<p class="field-error">` + templ.EscapeString(msg) + `</p>`
}

func Edit(props *EditProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wk := props.Wizkid
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<section class="dialog"><h1>Edit `+
				templ.EscapeString(wk.Name)+`</h1>`); err != nil {
				return err
			}
			if props.ErrorMessage != "" {
				if _, err := io.WriteString(w, `<p class="form-error">`+templ.EscapeString(props.ErrorMessage)+`</p>`); err != nil {
					return err
				}
			}

			form := `<form method="post" action="/wizkids/` + wk.ID + `/edit">` +
				`<label>Name<input type="text" name="Name" required value="` + templ.EscapeString(wk.Name) + `"></label>` +
				editFieldError(props, "Name") +
				`<label>Role<select name="Role">`
			for _, role := range props.Roles {
				selected := ""
				if role == wk.Role {
					selected = ` selected`
				}
				form += `<option value="` + templ.EscapeString(role) + `"` + selected + `>` +
					templ.EscapeString(role) + `</option>`
			}
			form += `</select></label>` +
				editFieldError(props, "Role") +
				`<label>Birth date<input type="date" name="BirthDate" required value="` + wk.BirthDate + `"></label>` +
				editFieldError(props, "BirthDate") +
				`<label>Email<input type="email" name="Email" value="` + templ.EscapeString(wk.Email) + `"></label>` +
				editFieldError(props, "Email") +
				`<label>Phone<input type="tel" name="Phone" value="` + templ.EscapeString(wk.Phone) + `"></label>` +
				editFieldError(props, "Phone") +
				`<button type="submit">Save</button>` +
				`</form>`
			if _, err := io.WriteString(w, form); err != nil {
				return err
			}

			if props.CanFire {
				label := "Fire "
				if wk.Fired {
					label = "Rehire "
				}
				if _, err := io.WriteString(w, `<p><a class="danger-link" href="/wizkids/`+wk.ID+`/fire">`+
					label+templ.EscapeString(wk.Name)+`</a></p>`); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `<p><a href="/wizkids">Cancel</a></p></section>`)
			return err
		})

		return layouts.Base(&layouts.BaseProps{Title: "Edit wizkid"}).
			Render(templ.WithChildren(ctx, content), w)
	})
}

type ConfirmProps struct {
	Wizkid *viewmodels.Wizkid
}

// Confirm always sits between the edit dialog and the status flip; there
// is no direct toggle route.
func Confirm(props *ConfirmProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		wk := props.Wizkid
		action := "fire"
		question := "Are you sure you want to fire "
		if wk.Fired {
			action = "rehire"
			question = "Are you sure you want to rehire "
		}
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, `<section class="dialog"><h1>Confirmation required</h1>`+
				`<p>`+question+`<strong>`+templ.EscapeString(wk.Name)+`</strong>?</p>`+
				`<form method="post" action="/wizkids/`+wk.ID+`/fire">`+
				`<button type="submit" class="danger">Yes, `+action+`</button>`+
				`</form>`+
				`<p><a href="/wizkids/`+wk.ID+`/edit">Cancel</a></p>`+
				`</section>`)
			return err
		})

		return layouts.Base(&layouts.BaseProps{Title: "Confirmation required"}).
			Render(templ.WithChildren(ctx, content), w)
	})
}
