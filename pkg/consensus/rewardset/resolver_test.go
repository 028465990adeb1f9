package rewardset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/log"
)

var testChainID = []byte{0x00, 0x00, 0x00, 0x01}

func newTestResolver(t *testing.T, firstWeightedCycle uint64) (*Resolver, *blockchain.DataAccess) {
	t.Helper()
	database, err := db.NewInMemoryDB()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	dataAccess := blockchain.NewDataAccess(database, testChainID)
	resolver := NewResolver(log.NewSilentLogger(), dataAccess, &Config{FirstWeightedCycle: firstWeightedCycle})
	return resolver, dataAccess
}

func testApproverSet(t *testing.T, weights ...uint64) *blockchain.ApproverSet {
	t.Helper()
	entries := make([]*blockchain.ApproverEntry, len(weights))
	for i, weight := range weights {
		priv := crypto.RandomBytes(crypto.PrivateKeyLength)
		pub, err := crypto.GetPublicKey(priv)
		require.NoError(t, err)
		entries[i] = &blockchain.ApproverEntry{PublicKey: pub, Weight: weight}
	}
	return &blockchain.ApproverSet{Approvers: entries}
}

func TestResolverLegacyCycle(t *testing.T) {
	resolver, _ := newTestResolver(t, 10)
	info, err := resolver.Resolve(9)
	require.NoError(t, err)
	assert.Equal(t, StatusNotSelected, info.Status)
	assert.Nil(t, info.Set)
}

func TestResolverWeightedCycleUnknown(t *testing.T) {
	resolver, access := newTestResolver(t, 10)

	// No indirection record at all.
	info, err := resolver.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, StatusSelectedUnknown, info.Status)
	assert.Nil(t, info.Set)

	// Indirection exists but the table itself is missing. Still unknown,
	// never a default.
	require.NoError(t, access.SaveCycleFinalizeHeight(11, 900))
	info, err = resolver.Resolve(11)
	require.NoError(t, err)
	assert.Equal(t, StatusSelectedUnknown, info.Status)
	assert.Nil(t, info.Set)
}

func TestResolverWeightedCycleKnown(t *testing.T) {
	resolver, access := newTestResolver(t, 10)
	set := testApproverSet(t, 40, 35, 25)
	require.NoError(t, access.SaveApproverSet(900, set))
	require.NoError(t, access.SaveCycleFinalizeHeight(10, 900))

	info, err := resolver.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, StatusSelectedKnown, info.Status)
	require.NotNil(t, info.Set)
	assert.Equal(t, uint64(100), info.Set.TotalWeight())
}

func TestResolverCachesKnownResult(t *testing.T) {
	resolver, access := newTestResolver(t, 10)
	set := testApproverSet(t, 50, 50)
	require.NoError(t, access.SaveApproverSet(900, set))
	require.NoError(t, access.SaveCycleFinalizeHeight(10, 900))

	first, err := resolver.Resolve(10)
	require.NoError(t, err)
	require.Equal(t, StatusSelectedKnown, first.Status)

	// A later resolution returns the cached table even if the stored
	// indirection disappears.
	second, err := resolver.Resolve(10)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestResolverUnknownIsNotCached(t *testing.T) {
	resolver, access := newTestResolver(t, 10)

	info, err := resolver.Resolve(10)
	require.NoError(t, err)
	require.Equal(t, StatusSelectedUnknown, info.Status)

	// Once the table lands, resolution moves to known.
	set := testApproverSet(t, 60, 40)
	require.NoError(t, access.SaveApproverSet(900, set))
	require.NoError(t, access.SaveCycleFinalizeHeight(10, 900))

	info, err = resolver.Resolve(10)
	require.NoError(t, err)
	assert.Equal(t, StatusSelectedKnown, info.Status)
}

func TestResolverWeighted(t *testing.T) {
	resolver, _ := newTestResolver(t, 10)
	assert.False(t, resolver.Weighted(9))
	assert.True(t, resolver.Weighted(10))
	assert.True(t, resolver.Weighted(11))
	assert.Equal(t, uint64(10), resolver.FirstWeightedCycle())
}
