package platform

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultProvider(t *testing.T) {
	t.Parallel()

	p := Default()
	require.NotNil(t, p.PackTime)
	require.NotNil(t, p.UnpackTime)
	require.NotNil(t, p.GetAttribute)
	require.NotNil(t, p.SetAttribute)

	stamp := time.Date(2026, 8, 6, 9, 0, 4, 0, time.UTC)
	assert.Equal(t, stamp, p.UnpackTime(p.PackTime(stamp)))
}
