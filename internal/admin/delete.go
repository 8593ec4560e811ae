package admin

import (
	"net/http"

	"github.com/a-h/templ"
	"github.com/bornholm/saskatoon/internal/admin/component"
	"github.com/bornholm/saskatoon/internal/metrics"
	"github.com/pkg/errors"
)

func (s *Site) getDeletePage(w http.ResponseWriter, r *http.Request) {
	form, err := s.newChangeForm(r, false)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	m := form.admin
	label := displayText(form.record)

	vmodel := component.DeletePageVModel{
		Layout:      s.layout(w, r, "Are you sure?"),
		VerboseName: m.VerboseName,
		ObjectLabel: label,
		Action:      s.DeleteURL(m.App, m.Name, form.pk),
		CancelURL:   s.ChangeURL(m.App, m.Name, form.pk),
	}

	vmodel.Layout.Breadcrumbs = append(
		s.breadcrumbs(m, ""),
		component.Link{Label: label, URL: vmodel.CancelURL},
		component.Link{Label: "Delete"},
	)

	deletePage := component.DeletePage(vmodel)
	templ.Handler(deletePage).ServeHTTP(w, r)
}

func (s *Site) postDeletePage(w http.ResponseWriter, r *http.Request) {
	form, err := s.newChangeForm(r, false)
	if err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	m := form.admin
	label := displayText(form.record)

	if err := form.db.Delete(form.record).Error; err != nil {
		s.handleError(w, r, errors.WithStack(err))
		return
	}

	s.notifyChange(r.Context(), m, metrics.ActionDelete)

	s.addMessage(w, r, "The %s “%s” was deleted successfully.", m.VerboseName, label)

	http.Redirect(w, r, s.ListURL(m.App, m.Name), http.StatusSeeOther)
}
