package component

import (
	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type Link struct {
	Label string
	URL   string
}

type IndexPageVModel struct {
	Title string
	Links []Link
}

func IndexPage(vmodel IndexPageVModel) templ.Component {
	return common.Markup(func(w *common.Writer) {
		w.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		w.Text(vmodel.Title)
		w.Raw(`</title></head><body style="font-family: sans-serif; margin: 40px;"><h1>`)
		w.Text(vmodel.Title)
		w.Raw(`</h1><ul>`)

		for _, l := range vmodel.Links {
			w.Raw(`<li><a`)
			w.Attr("href", l.URL)
			w.Raw(`>`)
			w.Text(l.Label)
			w.Raw(`</a></li>`)
		}

		w.Raw(`</ul></body></html>`)
	})
}
