package core

import "context"

// ErrorExplainer turns an unexpected failure into text a non-technical user can act on.
type ErrorExplainer interface {
	Explain(ctx context.Context, err error) (string, error)
}

// ExplainError never fails: if the explainer is missing, errors or returns nothing,
// the original message is returned verbatim.
func ExplainError(ctx context.Context, explainer ErrorExplainer, err error) string {
	if err == nil {
		return ""
	}
	if explainer == nil {
		return err.Error()
	}
	text, xErr := explainer.Explain(ctx, err)
	if xErr != nil || CleanString(text) == "" {
		return err.Error()
	}
	return text
}
