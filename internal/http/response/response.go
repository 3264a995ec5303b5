package response

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/megamind-app/megamind-backend/internal/pkg/apperr"
	"github.com/megamind-app/megamind-backend/internal/pkg/ctxutil"
)

type Meta struct {
	TraceID string `json:"traceId"`
}

type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

type Envelope struct {
	Data any  `json:"data"`
	Meta Meta `json:"meta"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
	Meta  Meta     `json:"meta"`
}

func traceID(c *gin.Context) string {
	if td := ctxutil.GetTraceData(c.Request.Context()); td != nil && td.TraceID != "" {
		return td.TraceID
	}
	return uuid.New().String()
}

// Data writes the success envelope around payload.
func Data(c *gin.Context, status int, payload any) {
	c.JSON(status, Envelope{
		Data: payload,
		Meta: Meta{TraceID: traceID(c)},
	})
}

// NoContent writes a bodyless 204.
func NoContent(c *gin.Context) {
	c.Status(204)
}

// Error normalizes err through apperr and writes the error envelope.
func Error(c *gin.Context, err error) {
	appErr := apperr.From(err)
	c.JSON(appErr.Status, ErrorEnvelope{
		Error: APIError{
			Code:    appErr.Code,
			Message: appErr.Message,
			Fields:  appErr.Fields,
		},
		Meta: Meta{TraceID: traceID(c)},
	})
}
