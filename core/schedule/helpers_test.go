package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/storage/database/inmem"
	"github.com/dance10/webapps/tests"
)

func newTestService(t *testing.T) (*Service, *inmemdb.DB) {
	store := inmemdb.Open()
	svc, err := NewService(store, core.NewLocker(50*time.Millisecond), testutil.NewConfig(), testutil.NopLogger{})
	require.NoError(t, err)
	return svc, store
}

func tableIDs(t *testing.T, store core.RowStore, table string) []string {
	rows, err := store.ReadTable(context.Background(), table)
	require.NoError(t, err)
	return core.Column(rows, 0)
}
