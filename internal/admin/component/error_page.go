package component

import (
	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type ErrorPageVModel struct {
	Layout  LayoutVModel
	Message string
}

func ErrorPage(vmodel ErrorPageVModel) templ.Component {
	body := common.Markup(func(w *common.Writer) {
		w.Raw(`<p class="error">`)
		w.Text(vmodel.Message)
		w.Raw(`</p>`)
	})

	return Layout(vmodel.Layout, body)
}
