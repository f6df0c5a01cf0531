package logsvc

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dance10/webapps/core"
)

func TestRollbarLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRollbarLogger(log.New(&buf, "", 0), &core.Config{Env: "TEST"})
	logger.Enable(false)

	actor := core.Actor{ID: "42", Username: "giaovu"}
	args := logger.prepare("sessions deleted", []interface{}{actor, map[string]interface{}{"count": 2}})
	assert.Equal(t, []interface{}{"sessions deleted", map[string]interface{}{"count": 2}}, args)

	logger.Info("sessions deleted", map[string]interface{}{"count": 2}, actor)
	assert.Equal(t, "sessions deleted\nmap[count:2]\n{ID:42 Username:giaovu}\n", buf.String())
}
