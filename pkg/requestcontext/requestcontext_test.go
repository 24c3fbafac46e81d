package requestcontext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestID(ctx))
	assert.Empty(t, ClientIP(ctx))

	ctx = WithRequestID(ctx, "req-9")
	ctx = WithClientMetadata(ctx, "10.1.2.3", "curl/8.0")

	assert.Equal(t, "req-9", RequestID(ctx))
	assert.Equal(t, "10.1.2.3", ClientIP(ctx))
	assert.Equal(t, "curl/8.0", UserAgent(ctx))
}
