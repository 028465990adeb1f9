package engine

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/engine/config"
)

type stubIndexer struct{}

func (s *stubIndexer) TipHeight() (uint64, error) { return 0, nil }
func (s *stubIndexer) SortitionAt(height uint64) (*blockchain.Sortition, error) {
	return nil, nil
}
func (s *stubIndexer) TenureChangesAt(height uint64) ([]*blockchain.TenureChange, error) {
	return nil, nil
}
func (s *stubIndexer) BlockCommit(tenureID []byte) (*blockchain.BlockCommit, error) {
	return nil, nil
}

func testGenesisBlob(t *testing.T) []byte {
	t.Helper()
	genesis := &blockchain.BlockHeader{
		Version:         1,
		Timestamp:       1650000000,
		ChainLength:     0,
		ConsensusHash:   make([]byte, blockchain.ConsensusHashLength),
		PreviousBlockID: make([]byte, blockchain.IDLength),
		TransactionRoot: make([]byte, 32),
		StateRoot:       make([]byte, 32),
	}
	return genesis.MustEncode()
}

// Start must release every resource after Stop. The database reopen fails
// on a leaked pebble lock if teardown did not run.
func TestEngineStartStop(t *testing.T) {
	dataPath := t.TempDir()
	engineConfig := &config.Config{
		System: &config.SystemConfig{
			DataPath: dataPath,
			LogLevel: "error",
		},
		Genesis: &config.GenesisConfig{
			ChainID: []byte{0, 0, 0, 1},
			Block:   &config.GenesisBlockConfig{Blob: testGenesisBlob(t)},
		},
	}
	ember := NewEngine(&stubIndexer{}, engineConfig)

	done := make(chan error, 1)
	go func() {
		done <- ember.Start()
	}()
	require.Eventually(t, func() bool { return ember.initialized }, 5*time.Second, 10*time.Millisecond)

	ember.Stop()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("engine did not shut down")
	}

	reopened, err := db.NewDB(filepath.Join(dataPath, "data", "blockchain.db"))
	require.NoError(t, err)
	require.NoError(t, reopened.Close())
}
