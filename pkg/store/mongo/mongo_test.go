package mongo

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/blockfill/pkg/errors"
	"github.com/matzehuels/blockfill/pkg/store"
	"github.com/matzehuels/blockfill/pkg/store/storetest"
)

// Set BLOCKFILL_TEST_MONGO to a connection URI to run against a live server.
func TestStore(t *testing.T) {
	uri := os.Getenv("BLOCKFILL_TEST_MONGO")
	if uri == "" {
		t.Skip("BLOCKFILL_TEST_MONGO not set")
	}
	storetest.Run(t, func(t *testing.T) store.Store {
		ctx := context.Background()
		s, err := Open(ctx, Config{
			URI:      uri,
			Database: "blockfill_test",
			// One collection per subtest keeps them independent.
			Collection: "runs_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		})
		require.NoError(t, err)
		t.Cleanup(func() {
			s.Drop(context.Background())
			s.Close()
		})
		return s
	})
}

func TestOpenRequiresURI(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig), "got %v", err)
}
