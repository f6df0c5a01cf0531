package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/dance10/webapps/core"
)

const (
	actorCtxKey    = "actor"
	headerUserID   = "X-User-ID"
	headerUsername = "X-Username"
)

// actorMiddleware records the user forwarded by the auth gateway in front of the API.
func actorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			actor := core.Actor{
				ID:       core.CleanString(ctx.Request().Header.Get(headerUserID)),
				Username: core.CleanString(ctx.Request().Header.Get(headerUsername)),
			}
			if !actor.IsZero() {
				ctx.Set(actorCtxKey, actor)
			}
			return next(ctx)
		}
	}
}

func getContextActor(ctx echo.Context) core.Actor {
	if actor, ok := ctx.Get(actorCtxKey).(core.Actor); ok {
		return actor
	}
	return core.Actor{}
}
