package component

import (
	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type Link struct {
	Label string
	URL   string
}

type LayoutVModel struct {
	SiteTitle   string
	Title       string
	IndexURL    string
	Breadcrumbs []Link
	Messages    []string
}

const stylesheet = `
body { font-family: sans-serif; margin: 0; color: #333; }
header { background: #417690; color: #fff; padding: 10px 40px; }
header a { color: #fff; text-decoration: none; }
nav.breadcrumbs { background: #79aec8; padding: 10px 40px; color: #fff; }
nav.breadcrumbs a { color: #fff; }
main { padding: 20px 40px; }
ul.messages { list-style: none; padding: 0; }
ul.messages li { background: #dfd; padding: 10px; margin-bottom: 4px; }
table { border-collapse: collapse; width: 100%; }
th, td { border-bottom: 1px solid #eee; padding: 6px 8px; text-align: left; vertical-align: top; }
th { background: #f6f6f6; }
.errorlist { color: #ba2121; list-style: none; padding: 0; margin: 0; }
.filters { float: right; width: 220px; margin-left: 20px; }
.filters .selected a { font-weight: bold; }
.results { overflow: hidden; }
fieldset { border: 1px solid #eee; margin-bottom: 20px; }
.form-row { padding: 8px 0; }
.form-row label { display: inline-block; width: 200px; font-weight: bold; }
`

func Layout(vmodel LayoutVModel, body templ.Component) templ.Component {
	return common.Markup(func(w *common.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		if vmodel.Title != "" {
			w.Text(vmodel.Title)
			w.Raw(" | ")
		}
		w.Text(vmodel.SiteTitle)
		w.Raw(`</title><style>`)
		w.Raw(stylesheet)
		w.Raw(`</style></head><body><header><h1><a`)
		w.Attr("href", vmodel.IndexURL)
		w.Raw(`>`)
		w.Text(vmodel.SiteTitle)
		w.Raw(`</a></h1></header>`)

		if len(vmodel.Breadcrumbs) > 0 {
			w.Raw(`<nav class="breadcrumbs">`)
			for i, b := range vmodel.Breadcrumbs {
				if i > 0 {
					w.Raw(" &rsaquo; ")
				}
				if b.URL == "" {
					w.Text(b.Label)
					continue
				}
				w.Raw(`<a`)
				w.Attr("href", b.URL)
				w.Raw(`>`)
				w.Text(b.Label)
				w.Raw(`</a>`)
			}
			w.Raw(`</nav>`)
		}

		w.Raw(`<main>`)

		if len(vmodel.Messages) > 0 {
			w.Raw(`<ul class="messages">`)
			for _, m := range vmodel.Messages {
				w.Raw(`<li>`)
				w.Text(m)
				w.Raw(`</li>`)
			}
			w.Raw(`</ul>`)
		}

		if vmodel.Title != "" {
			w.Raw(`<h2>`)
			w.Text(vmodel.Title)
			w.Raw(`</h2>`)
		}

		w.Render(body)

		w.Raw(`</main></body></html>`)
	})
}

func errorList(w *common.Writer, messages []string) {
	if len(messages) == 0 {
		return
	}

	w.Raw(`<ul class="errorlist">`)
	for _, m := range messages {
		w.Raw(`<li>`)
		w.Text(m)
		w.Raw(`</li>`)
	}
	w.Raw(`</ul>`)
}
