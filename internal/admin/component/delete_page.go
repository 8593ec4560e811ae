package component

import (
	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type DeletePageVModel struct {
	Layout LayoutVModel

	VerboseName string
	ObjectLabel string
	Action      string
	CancelURL   string
}

func DeletePage(vmodel DeletePageVModel) templ.Component {
	body := common.Markup(func(w *common.Writer) {
		w.Raw(`<p>Are you sure you want to delete the `)
		w.Text(vmodel.VerboseName)
		w.Raw(` “`)
		w.Text(vmodel.ObjectLabel)
		w.Raw(`”? Related records configured to cascade will be deleted as well.</p>`)
		w.Raw(`<form method="post"`)
		w.Attr("action", vmodel.Action)
		w.Raw(`><input type="submit" value="Yes, I’m sure"> <a`)
		w.Attr("href", vmodel.CancelURL)
		w.Raw(`>No, take me back</a></form>`)
	})

	return Layout(vmodel.Layout, body)
}
