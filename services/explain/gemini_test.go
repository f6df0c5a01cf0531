package explainsvc

import (
	"context"
	"io"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dance10/webapps/core"
)

type fakeGenerator struct {
	prompt string
	resp   *genai.GenerateContentResponse
	err    error
}

func (f *fakeGenerator) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	if len(parts) > 0 {
		if txt, ok := parts[0].(genai.Text); ok {
			f.prompt = string(txt)
		}
	}
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func TestGeminiExplainer_Explain(t *testing.T) {
	ctx := context.Background()
	failure := errors.New("pq: relation \"table_rows\" does not exist")

	t.Run("joins text parts", func(t *testing.T) {
		gen := &fakeGenerator{resp: textResponse(genai.Text("Cơ sở dữ liệu "), genai.Text("chưa được khởi tạo."))}
		svc := &GeminiExplainer{model: gen}

		text, err := svc.Explain(ctx, failure)
		require.NoError(t, err)
		assert.Equal(t, "Cơ sở dữ liệu chưa được khởi tạo.", text)
		assert.Contains(t, gen.prompt, `relation \"table_rows\" does not exist`)
	})

	t.Run("empty answer", func(t *testing.T) {
		svc := &GeminiExplainer{model: &fakeGenerator{resp: textResponse()}}
		_, err := svc.Explain(ctx, failure)
		assert.Error(t, err)
		assert.Equal(t, failure.Error(), core.ExplainError(ctx, svc, failure))
	})

	t.Run("model error falls back to the original message", func(t *testing.T) {
		svc := &GeminiExplainer{model: &fakeGenerator{err: errors.New("quota exceeded")}}
		assert.Equal(t, failure.Error(), core.ExplainError(ctx, svc, failure))
	})
}

func TestNewGeminiExplainer_noKey(t *testing.T) {
	_, err := NewGeminiExplainer(context.Background(), &core.Config{})
	assert.Equal(t, ErrNoAPIKey, err)
}

func TestGeminiExplainer_Close(t *testing.T) {
	var closer io.Closer = &GeminiExplainer{model: &fakeGenerator{}}
	assert.NoError(t, closer.Close())
}
