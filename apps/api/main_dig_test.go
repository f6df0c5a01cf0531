package main

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"github.com/dance10/webapps/tests"
)

type closingExplainer struct {
	closed int
	err    error
}

func (e *closingExplainer) Explain(context.Context, error) (string, error) { return "", nil }

func (e *closingExplainer) Close() error {
	e.closed++
	return e.err
}

type plainExplainer struct{}

func (plainExplainer) Explain(context.Context, error) (string, error) { return "", nil }

func Test_closeExplainer(t *testing.T) {
	logger := testutil.NopLogger{}

	t.Run("closes the client", func(t *testing.T) {
		explainer := &closingExplainer{}
		closeExplainer(explainer, logger)
		assert.Equal(t, 1, explainer.closed)
	})

	t.Run("close error is only logged", func(t *testing.T) {
		explainer := &closingExplainer{err: errors.New("already closed")}
		assert.NotPanics(t, func() { closeExplainer(explainer, logger) })
		assert.Equal(t, 1, explainer.closed)
	})

	t.Run("nothing to close", func(t *testing.T) {
		assert.NotPanics(t, func() { closeExplainer(plainExplainer{}, logger) })
		assert.NotPanics(t, func() { closeExplainer(nil, logger) })
	})
}
