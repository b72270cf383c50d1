package http

import (
	"errors"
	"io/fs"
	"net/http"

	"github.com/MKhiriev/mission-control/internal/app"
)

type errorResponse struct {
	status  int
	message string
}

var errorStatusMap = map[error]errorResponse{
	fs.ErrNotExist:   {status: http.StatusNotFound, message: app.MsgDocumentNotFound},
	fs.ErrPermission: {status: http.StatusForbidden, message: app.MsgDocumentNotReadable},
}

// responseFromError maps a document read error to a status and body.
func responseFromError(err error) (int, string) {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp.status, resp.message
		}
	}
	return http.StatusInternalServerError, app.MsgInternalServerError
}
