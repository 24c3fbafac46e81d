package service

import (
	"context"

	"github.com/glide-ceylon/gidz-uni-path-sub001/pkg/requestcontext"
)

// withRequestID appends the request_id attribute when the context carries one.
func withRequestID(ctx context.Context, attrs ...any) []any {
	if rid := requestcontext.RequestID(ctx); rid != "" {
		return append(attrs, "request_id", rid)
	}
	return attrs
}
