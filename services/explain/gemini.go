package explainsvc

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/dance10/webapps/core"
)

const promptTemplate = "Bạn là một lập trình viên chuyên nghiệp. Một lỗi vừa xảy ra trong hệ thống quản lý lịch dạy " +
	"của trung tâm. Dựa vào thông tin lỗi sau đây: %q, hãy giải thích nguyên nhân có thể gây ra lỗi này bằng ngôn ngữ " +
	"đơn giản, dễ hiểu cho người không chuyên về kỹ thuật và đề xuất hướng khắc phục nếu có."

var ErrNoAPIKey = errors.New("gemini api key is not configured")

type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiExplainer asks a Gemini model to describe unexpected errors in plain Vietnamese.
type GeminiExplainer struct {
	client  *genai.Client
	model   generator
	timeout time.Duration
}

var _ core.ErrorExplainer = (*GeminiExplainer)(nil)

func NewGeminiExplainer(ctx context.Context, conf *core.Config) (*GeminiExplainer, error) {
	if conf.Gemini.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	opts := []option.ClientOption{option.WithAPIKey(conf.Gemini.APIKey)}
	if conf.Gemini.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(conf.Gemini.Endpoint))
	}
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating gemini client")
	}
	return &GeminiExplainer{
		client:  client,
		model:   client.GenerativeModel(conf.Gemini.Model),
		timeout: conf.Gemini.Timeout,
	}, nil
}

func (g *GeminiExplainer) Explain(ctx context.Context, err error) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, genErr := g.model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTemplate, err.Error())))
	if genErr != nil {
		return "", errors.Wrap(genErr, "generating explanation")
	}

	var text strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", errors.New("empty explanation")
	}
	return text.String(), nil
}

func (g *GeminiExplainer) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}
