package middleware

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/cookbook/internal/apperr"
)

// errorBody is the uniform error envelope
type errorBody struct {
	Code    apperr.Kind         `json:"code"`
	Message string              `json:"message"`
	Details []apperr.FieldError `json:"details,omitempty"`
}

// ErrorEnvelope wraps errorBody under the "error" key
type ErrorEnvelope struct {
	Error errorBody `json:"error"`
}

// Envelope builds the error envelope for a domain error
func Envelope(err *apperr.Error) ErrorEnvelope {
	return ErrorEnvelope{Error: errorBody{
		Code:    err.Kind,
		Message: err.Message,
		Details: err.Details,
	}}
}

// RespondError translates any error into the envelope with its fixed
// status. Unexpected faults are logged and downgraded to a generic 500.
func RespondError(c *gin.Context, err error) {
	appErr := apperr.From(err)
	if appErr.Kind == apperr.KindInternal {
		log.Printf("Error: %v", err)
	}
	c.AbortWithStatusJSON(appErr.Status(), Envelope(appErr))
}

// ErrorHandler recovers panics at the route boundary and returns a generic
// 500 so internals never leak to the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, Envelope(&apperr.Error{
					Kind:    apperr.KindInternal,
					Message: "internal server error",
				}))
			}
		}()
		c.Next()
	}
}
