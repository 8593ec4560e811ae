package component

import (
	"strconv"

	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
	"github.com/dustin/go-humanize"
)

type FilterChoiceVModel struct {
	Label    string
	URL      string
	Selected bool
}

type FilterVModel struct {
	Title   string
	Choices []FilterChoiceVModel
}

type ChangeListRowVModel struct {
	ChangeURL string
	Cells     []templ.Component
}

type ChangeListPageVModel struct {
	Layout LayoutVModel

	AddURL string

	SearchEnabled bool
	Search        string

	Columns []string
	Rows    []ChangeListRowVModel
	Filters []FilterVModel

	Total         int64
	FilteredTotal int64

	Page    int
	Pages   int
	PrevURL string
	NextURL string
}

func ChangeListPage(vmodel ChangeListPageVModel) templ.Component {
	body := common.Markup(func(w *common.Writer) {
		w.Raw(`<p><a class="addlink"`)
		w.Attr("href", vmodel.AddURL)
		w.Raw(`>Add</a></p>`)

		if vmodel.SearchEnabled {
			w.Raw(`<form id="changelist-search" method="get"><input type="text" name="q"`)
			w.Attr("value", vmodel.Search)
			w.Raw(` autofocus><input type="submit" value="Search">`)
			if vmodel.Search != "" {
				w.Raw(` <span class="small">`)
				w.Text(humanize.Comma(vmodel.FilteredTotal))
				w.Raw(` results (`)
				w.Text(humanize.Comma(vmodel.Total))
				w.Raw(` total)</span>`)
			}
			w.Raw(`</form>`)
		}

		if len(vmodel.Filters) > 0 {
			w.Raw(`<div class="filters"><h3>Filter</h3>`)
			for _, f := range vmodel.Filters {
				w.Raw(`<h4>`)
				w.Text(f.Title)
				w.Raw(`</h4><ul>`)
				for _, c := range f.Choices {
					if c.Selected {
						w.Raw(`<li class="selected">`)
					} else {
						w.Raw(`<li>`)
					}
					w.Raw(`<a`)
					w.Attr("href", c.URL)
					w.Raw(`>`)
					w.Text(c.Label)
					w.Raw(`</a></li>`)
				}
				w.Raw(`</ul>`)
			}
			w.Raw(`</div>`)
		}

		w.Raw(`<div class="results"><table id="result_list"><thead><tr>`)
		for _, c := range vmodel.Columns {
			w.Raw(`<th scope="col">`)
			w.Text(c)
			w.Raw(`</th>`)
		}
		w.Raw(`</tr></thead><tbody>`)
		for _, row := range vmodel.Rows {
			w.Raw(`<tr>`)
			for i, cell := range row.Cells {
				if i == 0 {
					w.Raw(`<th><a`)
					w.Attr("href", row.ChangeURL)
					w.Raw(`>`)
					w.Render(cell)
					w.Raw(`</a></th>`)
					continue
				}
				w.Raw(`<td>`)
				w.Render(cell)
				w.Raw(`</td>`)
			}
			w.Raw(`</tr>`)
		}
		w.Raw(`</tbody></table>`)

		w.Raw(`<p class="paginator">`)
		if vmodel.PrevURL != "" {
			w.Raw(`<a`)
			w.Attr("href", vmodel.PrevURL)
			w.Raw(`>&lsaquo; Previous</a> `)
		}
		if vmodel.Pages > 1 {
			w.Text("Page " + strconv.Itoa(vmodel.Page) + " of " + strconv.Itoa(vmodel.Pages) + " ")
		}
		if vmodel.NextURL != "" {
			w.Raw(`<a`)
			w.Attr("href", vmodel.NextURL)
			w.Raw(`>Next &rsaquo;</a> `)
		}
		w.Text(humanize.Comma(vmodel.FilteredTotal))
		w.Raw(`</p></div>`)
	})

	return Layout(vmodel.Layout, body)
}
