package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/dance10/webapps/core"
)

func Test_actorMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    core.Actor
	}{
		{name: "anonymous", want: core.Actor{}},
		{name: "blank headers", headers: map[string]string{headerUserID: "  ", headerUsername: ""}, want: core.Actor{}},
		{
			name:    "forwarded user",
			headers: map[string]string{headerUserID: " U01 ", headerUsername: "thu.nguyen"},
			want:    core.Actor{ID: "U01", Username: "thu.nguyen"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			ctx := echo.New().NewContext(req, httptest.NewRecorder())

			var got core.Actor
			h := actorMiddleware()(func(ctx echo.Context) error {
				got = getContextActor(ctx)
				return nil
			})
			assert.NoError(t, h(ctx))
			assert.Equal(t, tt.want, got)
		})
	}
}
