package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
)

func resolveTilda(p, homedir string) string {
	return strings.ReplaceAll(p, "~", homedir)
}

// ReadGenesisHeader loads the genesis block header from the blob or the
// configured file.
func ReadGenesisHeader(config *Config) (*blockchain.BlockHeader, error) {
	if config.Genesis.Block == nil {
		return nil, errors.New("genesis block config is empty")
	}
	if len(config.Genesis.Block.Blob) != 0 {
		return blockchain.NewBlockHeader(config.Genesis.ChainID, config.Genesis.Block.Blob)
	}
	if config.Genesis.Block.FromFile != "" {
		homedir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		genesisFilePath := resolveTilda(config.Genesis.Block.FromFile, homedir)
		if !filepath.IsAbs(genesisFilePath) {
			var err error
			dataPath := resolveTilda(config.System.DataPath, homedir)
			genesisFilePath, err = filepath.Abs(filepath.Join(dataPath, config.Genesis.Block.FromFile))
			if err != nil {
				return nil, err
			}
		}
		genesisFile, err := os.ReadFile(genesisFilePath)
		if err != nil {
			return nil, err
		}
		return blockchain.NewBlockHeader(config.Genesis.ChainID, genesisFile)
	}

	return nil, errors.New("genesis block config is empty")
}
