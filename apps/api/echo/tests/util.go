package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	. "github.com/dance10/webapps/apps/api/echo"
	"github.com/dance10/webapps/core"
	"github.com/dance10/webapps/core/schedule"
	"github.com/dance10/webapps/storage/database/inmem"
	"github.com/dance10/webapps/tests"
)

type setupOpts struct {
	store     core.RowStore
	explainer core.ErrorExplainer
	logger    core.Logger
}

func setup(t *testing.T, opts ...setupOpts) (*Server, core.RowStore) {
	var opt setupOpts
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.store == nil {
		opt.store = inmemdb.Open()
	}
	conf := testutil.NewConfig()
	var logger core.Logger = testutil.NopLogger{}
	if opt.logger != nil {
		logger = opt.logger
	}

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	schedule.InitValidators(validate, translator)

	svc, err := schedule.NewService(opt.store, core.NewLocker(time.Second), conf, logger)
	if err != nil {
		t.Fatalf("setup() failed: %v", err)
	}

	return NewServer(ServerDeps{
		Conf:           conf,
		Logger:         logger,
		ScheduleSvc:    svc,
		Explainer:      opt.explainer,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	}), opt.store
}

// brokenStore fails every read of one table.
type brokenStore struct {
	core.RowStore
	table string
}

func (s brokenStore) ReadTable(ctx context.Context, name string) ([]core.Row, error) {
	if name == s.table {
		return nil, errors.New("connection reset by peer")
	}
	return s.RowStore.ReadTable(ctx, name)
}

type explainerFunc func(ctx context.Context, err error) (string, error)

func (f explainerFunc) Explain(ctx context.Context, err error) (string, error) {
	return f(ctx, err)
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(tt.method, tt.path, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func newStore() core.RowStore {
	return inmemdb.Open()
}
