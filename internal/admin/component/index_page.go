package component

import (
	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type ModelLinkVModel struct {
	Label   string
	ListURL string
	AddURL  string
}

type AppVModel struct {
	Label  string
	URL    string
	Models []ModelLinkVModel
}

type IndexPageVModel struct {
	Layout LayoutVModel
	Apps   []AppVModel
}

func IndexPage(vmodel IndexPageVModel) templ.Component {
	body := common.Markup(func(w *common.Writer) {
		for _, app := range vmodel.Apps {
			w.Raw(`<table class="app"><caption><a`)
			w.Attr("href", app.URL)
			w.Raw(`>`)
			w.Text(app.Label)
			w.Raw(`</a></caption>`)
			for _, m := range app.Models {
				w.Raw(`<tr><th><a`)
				w.Attr("href", m.ListURL)
				w.Raw(`>`)
				w.Text(m.Label)
				w.Raw(`</a></th><td><a`)
				w.Attr("href", m.AddURL)
				w.Raw(`>Add</a></td></tr>`)
			}
			w.Raw(`</table>`)
		}
	})

	return Layout(vmodel.Layout, body)
}
