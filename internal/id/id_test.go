package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, err := Generate("tok")
	require.NoError(t, err)
	b, err := Generate("tok")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "tok-"))
	assert.Len(t, a, len("tok-")+21)
	assert.NotEqual(t, a, b)
}
