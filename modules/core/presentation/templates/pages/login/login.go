package login

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/owow-nl/wizkid-manager/modules/core/presentation/templates/layouts"
)

type LoginProps struct {
	Email        string
	ErrorMessage string
	ErrorsMap    map[string]string
	// SignUp switches the form between sign-in and sign-up mode.
	SignUp bool
}

func fieldError(props *LoginProps, field string) string {
	if props.ErrorsMap == nil {
		return ""
	}
	msg, ok := props.ErrorsMap[field]
	if !ok {
		return ""
	}
	return `<p class="field-error">` + templ.EscapeString(msg) + `</p>`
}

func Index(props *LoginProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		title := "Sign in"
		action := "/login"
		toggle := `<a href="/signup">No account yet? Sign up</a>`
		submit := "Sign in"
		if props.SignUp {
			title = "Sign up"
			action = "/signup"
			toggle = `<a href="/login">Already a wizkid? Sign in</a>`
			submit = "Create account"
		}

		content := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<section class="auth-card"><h1>`+templ.EscapeString(title)+`</h1>`); err != nil {
				return err
			}
			if props.ErrorMessage != "" {
				if _, err := io.WriteString(w, `<p class="form-error">`+templ.EscapeString(props.ErrorMessage)+`</p>`); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `<form method="post" action="`+action+`">`+
				`<label>Email<input type="email" name="Email" required value="`+templ.EscapeString(props.Email)+`"></label>`+
				fieldError(props, "Email")+
				`<label>Password<input type="password" name="Password" required></label>`+
				fieldError(props, "Password")+
				`<button type="submit">`+templ.EscapeString(submit)+`</button>`+
				`</form>`+
				`<form method="post" action="/guest">`+
				`<button type="submit" class="secondary">Continue as guest</button>`+
				`</form>`+
				`<p class="auth-toggle">`+toggle+`</p>`+
				`</section>`); err != nil {
				return err
			}
			return nil
		})

		return layouts.Base(&layouts.BaseProps{Title: title}).
			Render(templ.WithChildren(ctx, content), w)
	})
}
