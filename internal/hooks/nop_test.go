package hooks

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calendario/shiftboard/types"
)

func TestNewNop(t *testing.T) {
	h := NewNop()

	require.NotNil(t, h.OnAssignmentChanged)
	require.NotNil(t, h.OnViolationsChanged)
	require.NotNil(t, h.OnOpStateChanged)
	require.NotNil(t, h.OnError)

	ctx := context.Background()
	require.NoError(t, h.OnAssignmentChanged(ctx, "2024-06-01", []string{"alice"}))
	require.NoError(t, h.OnViolationsChanged(ctx, nil, []types.Violation{{Date: "2024-06-01"}}))
	require.NoError(t, h.OnOpStateChanged(ctx, types.OpIdle, types.OpPendingConfirmation))
	require.NoError(t, h.OnError(ctx, nil))
}
