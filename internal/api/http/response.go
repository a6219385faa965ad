package httpapi

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/skupulse/skupulse-manager/internal/entity"
)

// ErrResponse is the JSON error envelope.
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText string `json:"status"`
	ErrorText  string `json:"error,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrInternalServerError(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     http.StatusText(http.StatusInternalServerError),
		ErrorText:      err.Error(),
	}
}

// ReportResponse wraps a finished report.
type ReportResponse struct {
	Report *entity.Report `json:"report"`
}

func NewReportResponse(report *entity.Report) *ReportResponse {
	return &ReportResponse{Report: report}
}

func (rd *ReportResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
