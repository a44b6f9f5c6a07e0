package notify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewNATS_RequiresConnection(t *testing.T) {
	_, err := NewNATS(nil)
	require.Error(t, err)
}
