package layouts

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

type BaseProps struct {
	Title string
}

// Base is the shared HTML shell. Children render inside <main>.
func Base(props *BaseProps) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head>`+
			`<meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1">`+
			`<title>`+templ.EscapeString(props.Title)+` | Wizkid Manager 2000</title>`+
			`<link rel="stylesheet" href="/static/app.css">`+
			`</head><body><main class="page">`); err != nil {
			return err
		}
		children := templ.GetChildren(ctx)
		if children != nil {
			if err := children.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}
