package component

import (
	"slices"
	"strconv"

	"github.com/a-h/templ"
	common "github.com/bornholm/saskatoon/internal/http/handler/common/component"
)

type ChoiceVModel struct {
	Value string
	Label string
}

type FieldVModel struct {
	Name     string
	Label    string
	Kind     string
	Required bool
	Values   []string
	Choices  []ChoiceVModel
	Errors   []string
}

func (f FieldVModel) Value() string {
	if len(f.Values) == 0 {
		return ""
	}

	return f.Values[0]
}

type InlineRowVModel struct {
	IDName     string
	ID         string
	DeleteName string
	Fields     []FieldVModel
	Errors     []string
}

type InlineVModel struct {
	Title          string
	TotalFormsName string
	Columns        []string
	Rows           []InlineRowVModel
}

type ChangeFormPageVModel struct {
	Layout LayoutVModel

	Action    string
	DeleteURL string

	NonFieldErrors []string
	Fields         []FieldVModel
	Inlines        []InlineVModel
}

func ChangeFormPage(vmodel ChangeFormPageVModel) templ.Component {
	body := common.Markup(func(w *common.Writer) {
		w.Raw(`<form method="post" enctype="application/x-www-form-urlencoded"`)
		w.Attr("action", vmodel.Action)
		w.Raw(`>`)

		errorList(w, vmodel.NonFieldErrors)

		w.Raw(`<fieldset>`)
		for _, f := range vmodel.Fields {
			w.Raw(`<div class="form-row">`)
			errorList(w, f.Errors)
			w.Raw(`<label`)
			w.Attr("for", "id_"+f.Name)
			w.Raw(`>`)
			w.Text(f.Label)
			w.Raw(`</label>`)
			input(w, f)
			w.Raw(`</div>`)
		}
		w.Raw(`</fieldset>`)

		for _, inline := range vmodel.Inlines {
			w.Raw(`<fieldset class="inline"><h3>`)
			w.Text(inline.Title)
			w.Raw(`</h3><input type="hidden"`)
			w.Attr("name", inline.TotalFormsName)
			w.Attr("value", strconv.Itoa(len(inline.Rows)))
			w.Raw(`><table><thead><tr>`)
			for _, c := range inline.Columns {
				w.Raw(`<th>`)
				w.Text(c)
				w.Raw(`</th>`)
			}
			w.Raw(`<th>Delete?</th></tr></thead><tbody>`)
			for _, row := range inline.Rows {
				if len(row.Errors) > 0 {
					w.Raw(`<tr><td`)
					w.Attr("colspan", strconv.Itoa(len(inline.Columns)+1))
					w.Raw(`>`)
					errorList(w, row.Errors)
					w.Raw(`</td></tr>`)
				}
				w.Raw(`<tr>`)
				for i, f := range row.Fields {
					w.Raw(`<td>`)
					if i == 0 {
						w.Raw(`<input type="hidden"`)
						w.Attr("name", row.IDName)
						w.Attr("value", row.ID)
						w.Raw(`>`)
					}
					errorList(w, f.Errors)
					input(w, f)
					w.Raw(`</td>`)
				}
				w.Raw(`<td>`)
				if row.ID != "" {
					w.Raw(`<input type="checkbox"`)
					w.Attr("name", row.DeleteName)
					w.Raw(`>`)
				}
				w.Raw(`</td></tr>`)
			}
			w.Raw(`</tbody></table></fieldset>`)
		}

		w.Raw(`<div class="submit-row"><input type="submit" value="Save" name="_save"> `)
		w.Raw(`<input type="submit" value="Save and add another" name="_addanother"> `)
		w.Raw(`<input type="submit" value="Save and continue editing" name="_continue">`)
		if vmodel.DeleteURL != "" {
			w.Raw(` <a class="deletelink"`)
			w.Attr("href", vmodel.DeleteURL)
			w.Raw(`>Delete</a>`)
		}
		w.Raw(`</div></form>`)
	})

	return Layout(vmodel.Layout, body)
}

func input(w *common.Writer, f FieldVModel) {
	id := "id_" + f.Name

	switch f.Kind {
	case "checkbox":
		w.Raw(`<input type="checkbox"`)
		w.Attr("id", id)
		w.Attr("name", f.Name)
		if v := f.Value(); v == "true" || v == "on" {
			w.Raw(` checked`)
		}
		w.Raw(`>`)

	case "nullbool":
		choices := []ChoiceVModel{{Value: "", Label: "Unknown"}, {Value: "true", Label: "Yes"}, {Value: "false", Label: "No"}}
		selectInput(w, id, f.Name, false, choices, f.Values)

	case "select":
		choices := append([]ChoiceVModel{{Value: "", Label: "---------"}}, f.Choices...)
		selectInput(w, id, f.Name, false, choices, f.Values)

	case "multiselect":
		selectInput(w, id, f.Name, true, f.Choices, f.Values)

	case "number":
		w.Raw(`<input type="number" step="any"`)
		w.Attr("id", id)
		w.Attr("name", f.Name)
		w.Attr("value", f.Value())
		w.Raw(`>`)

	default:
		w.Raw(`<input`)
		w.Attr("type", f.Kind)
		w.Attr("id", id)
		w.Attr("name", f.Name)
		w.Attr("value", f.Value())
		w.Raw(`>`)
	}
}

func selectInput(w *common.Writer, id string, name string, multiple bool, choices []ChoiceVModel, values []string) {
	w.Raw(`<select`)
	w.Attr("id", id)
	w.Attr("name", name)
	if multiple {
		w.Raw(` multiple`)
	}
	w.Raw(`>`)
	for _, c := range choices {
		w.Raw(`<option`)
		w.Attr("value", c.Value)
		if slices.Contains(values, c.Value) {
			w.Raw(` selected`)
		}
		w.Raw(`>`)
		w.Text(c.Label)
		w.Raw(`</option>`)
	}
	w.Raw(`</select>`)
}
