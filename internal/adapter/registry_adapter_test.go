package adapter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRegistry(t *testing.T) {
	registry, err := DecodeRegistry([]byte(`version: 1
operators:
  - signature: "relu(Tensor self) -> Tensor"
  - signature: "add_(Tensor(a!) self, Tensor other) -> Tensor(a!)"
`))
	require.NoError(t, err)

	assert.Equal(t, 1, registry.Version)
	require.Len(t, registry.Operators, 2)
	assert.Equal(t, "relu(Tensor self) -> Tensor", registry.Operators[0].Signature)
}

func TestDecodeRegistry_WrongVersion(t *testing.T) {
	_, err := DecodeRegistry([]byte("version: 2\noperators: []\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported registry version")
}

func TestDecodeRegistry_InvalidYAML(t *testing.T) {
	_, err := DecodeRegistry([]byte("{not yaml"))
	assert.Error(t, err)
}
