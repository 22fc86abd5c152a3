package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUIDProvider_NewID(t *testing.T) {
	provider := NewUUIDProvider()

	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		id := provider.NewID()

		_, err := uuid.Parse(id)
		require.NoError(t, err)

		_, dup := seen[id]
		assert.False(t, dup, "duplicate id %s", id)
		seen[id] = struct{}{}
	}
}
