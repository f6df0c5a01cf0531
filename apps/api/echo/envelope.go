package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// envelope is the shape of every response body.
type envelope struct {
	Success bool              `json:"success"`
	Data    interface{}       `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
	Error   string            `json:"error,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"` // per-field validation errors
}

func respond(ctx echo.Context, code int, data interface{}, message string) error {
	return ctx.JSON(code, envelope{Success: true, Data: data, Message: message})
}

func ok(ctx echo.Context, data interface{}, message ...string) error {
	var msg string
	if len(message) > 0 {
		msg = message[0]
	}
	return respond(ctx, http.StatusOK, data, msg)
}
