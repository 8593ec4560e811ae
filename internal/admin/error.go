package admin

import (
	"log/slog"
	"net/http"

	"github.com/a-h/templ"
	"github.com/bornholm/go-x/slogx"
	"github.com/bornholm/saskatoon/internal/admin/component"
	"github.com/bornholm/saskatoon/internal/core/port"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var ErrAlreadyRegistered = errors.New("already registered")

type HTTPError interface {
	error
	StatusCode() int
}

type UserFacingError interface {
	error
	UserMessage() string
}

type Error struct {
	err         string
	userMessage string
	statusCode  int
}

// StatusCode implements HTTPError.
func (e *Error) StatusCode() int {
	return e.statusCode
}

// Error implements UserFacingError.
func (e *Error) Error() string {
	return e.err
}

// UserMessage implements UserFacingError.
func (e *Error) UserMessage() string {
	return e.userMessage
}

func NewError(err string, userMessage string, statusCode int) *Error {
	return &Error{err, userMessage, statusCode}
}

func NewHTTPError(statusCode int) *Error {
	return &Error{http.StatusText(statusCode), http.StatusText(statusCode), statusCode}
}

var _ UserFacingError = &Error{}
var _ HTTPError = &Error{}

func (s *Site) handleError(w http.ResponseWriter, r *http.Request, err error) {
	vmodel := component.ErrorPageVModel{
		Layout: s.layout(w, r, ""),
	}

	statusCode := http.StatusInternalServerError

	if errors.Is(err, port.ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		err = NewHTTPError(http.StatusNotFound)
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		statusCode = httpErr.StatusCode()
	}

	var userFacingErr UserFacingError
	if errors.As(err, &userFacingErr) {
		vmodel.Message = userFacingErr.UserMessage()
	} else {
		vmodel.Message = http.StatusText(statusCode)
	}

	if httpErr == nil && userFacingErr == nil {
		slog.ErrorContext(r.Context(), "unexpected admin error", slogx.Error(errors.WithStack(err)))
	}

	vmodel.Layout.Title = http.StatusText(statusCode)

	templ.Handler(component.ErrorPage(vmodel), templ.WithStatus(statusCode)).ServeHTTP(w, r)
}
