package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	log := New()
	ctx := AddToContext(context.Background(), log)

	require.Same(t, log, FromContext(ctx))

	// a bare context still yields a usable logger
	require.NotNil(t, FromContext(context.Background()))
}
