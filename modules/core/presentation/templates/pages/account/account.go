package account

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/layouts"
)

type SettingsProps struct {
	Email        string
	Role         string
	Phone        string
	AvatarURL    string
	Roles        []string
	ErrorMessage string
	ErrorsMap    map[string]string
}

func roleOptions(props *SettingsProps) string {
	out := `<option value="">No role</option>`
	for _, role := range props.Roles {
		selected := ""
		if role == props.Role {
			selected = ` selected`
		}
		out += `<option value="` + templ.EscapeString(role) + `"` + selected + `>` +
			templ.EscapeString(role) + `</option>`
	}
	return out
}

func Index(props *SettingsProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<section class="settings"><h1>Account settings</h1>`+
				`<p class="settings-email">`+templ.EscapeString(props.Email)+`</p>`); err != nil {
				return err
			}
			if props.ErrorMessage != "" {
				if _, err := io.WriteString(w, `<p class="form-error">`+templ.EscapeString(props.ErrorMessage)+`</p>`); err != nil {
					return err
				}
			}
			if props.AvatarURL != "" {
				if _, err := io.WriteString(w, `<img class="avatar" src="`+templ.EscapeString(props.AvatarURL)+`" alt="Avatar">`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<form method="post" action="/account/avatar" enctype="multipart/form-data">`+
				`<label>Avatar<input type="file" name="Avatar" accept="image/*" required></label>`+
				`<button type="submit" class="secondary">Upload avatar</button>`+
				`</form>`); err != nil {
				return err
			}
			if _, err := io.WriteString(w, `<form method="post" action="/account">`+
				`<label>Role<select name="Role">`+roleOptions(props)+`</select></label>`+
				`<label>Phone<input type="tel" name="Phone" value="`+templ.EscapeString(props.Phone)+`"></label>`+
				`<button type="submit">Save</button>`+
				`</form>`+
				`<p><a href="/wizkids">Back to the directory</a></p>`+
				`</section>`); err != nil {
				return err
			}
			return nil
		})

		return layouts.Base(&layouts.BaseProps{Title: "Account settings"}).
			Render(templ.WithChildren(ctx, content), w)
	})
}
