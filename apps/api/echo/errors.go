package echoapi

import (
	"fmt"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
)

var errHttpNotFound = echo.NewHTTPError(http.StatusNotFound, "Không tìm thấy.")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
// Unexpected errors are logged and, when an explainer is configured, described in plain words.
func newAppHTTPErrorHandler(logger core.Logger, explainer core.ErrorExplainer, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		resp := envelope{Success: false}

		cause := errors.Cause(err)
		if cause == core.ErrBusy {
			code = http.StatusServiceUnavailable
			resp.Error = cause.Error()
		} else {
			switch origErr := cause.(type) {
			case *echo.HTTPError:
				if origErr == echo.ErrNotFound {
					origErr = errHttpNotFound
				}
				if origErr.Internal != nil {
					if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
						origErr = herr
					}
				}
				code = origErr.Code
				resp.Error = fmt.Sprint(origErr.Message)
			case validator.ValidationErrors:
				resp.Fields = make(map[string]string, len(origErr))
				for i, vErr := range origErr {
					msg := vErr.Translate(translator)
					resp.Fields[vErr.Field()] = msg
					if i == 0 {
						resp.Error = msg
					}
				}
				code = http.StatusBadRequest
			case *core.ValidationError:
				if origErr.Fields != nil {
					resp.Fields = make(map[string]string, len(origErr.Fields))
					for _, fErr := range origErr.Fields {
						resp.Fields[fErr.Field] = fErr.Error
					}
				}
				resp.Error = origErr.Error()
				code = http.StatusBadRequest
			case *core.NotFoundError:
				code = http.StatusNotFound
				resp.Error = origErr.Error()
			case *schedule.ConflictError:
				code = http.StatusConflict
				resp.Error = origErr.Error()
			case *core.DependencyError:
				code = http.StatusConflict
				resp.Error = origErr.Error()
			default: // any other error is a server error
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				logger.Error(msg, errors.Wrap(err, msg), getContextActor(ctx))
				resp.Error = core.ExplainError(ctx.Request().Context(), explainer, err)
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, resp)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
