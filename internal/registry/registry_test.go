package registry

import (
	"context"
	"testing"
	"time"

	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegistry_RejectsDuplicate(t *testing.T) {
	reg := NewMemory(time.Hour)
	ctx := context.Background()

	require.NoError(t, reg.Record(ctx, "NEXA_1_ABC"))
	assert.ErrorIs(t, reg.Record(ctx, "NEXA_1_ABC"), domainErrors.ErrDuplicateReference)
	assert.NoError(t, reg.Record(ctx, "NEXA_1_DEF"))
}

func TestMemoryRegistry_ExpiresEntries(t *testing.T) {
	reg := NewMemory(time.Minute)
	current := time.Unix(1700000000, 0)
	reg.now = func() time.Time { return current }
	ctx := context.Background()

	require.NoError(t, reg.Record(ctx, "NEXA_2_ABC"))

	current = current.Add(2 * time.Minute)
	assert.NoError(t, reg.Record(ctx, "NEXA_2_ABC"))
}
