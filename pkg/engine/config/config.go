// Package config provides config structure for engine.
package config

import (
	"errors"
	"fmt"
	"os"
	"path"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/collection/strings"
)

var (
	logLevels                       = []string{"debug", "info", "warn", "error", "fatal"}
	defaultRewardCycleLength        = uint64(2100)
	defaultMissedSortitionTolerance = uint32(6)
)

type Config struct {
	System    *SystemConfig    `json:"system"`
	RPC       *RPCConfig       `json:"rpc"`
	Genesis   *GenesisConfig   `json:"genesis"`
	Consensus *ConsensusConfig `json:"consensus"`
}

func (c *Config) InsertDefault() error {
	if c.System == nil {
		c.System = &SystemConfig{}
	}
	if err := c.System.InsertDefault(); err != nil {
		return err
	}
	if c.RPC == nil {
		c.RPC = &RPCConfig{}
	}
	if err := c.RPC.InsertDefault(); err != nil {
		return err
	}
	if c.Genesis == nil {
		c.Genesis = &GenesisConfig{}
	}
	if c.Consensus == nil {
		c.Consensus = &ConsensusConfig{}
	}
	if err := c.Consensus.InsertDefault(); err != nil {
		return err
	}
	return nil
}

func (c *Config) Merge(config *Config) {
	c.System.Merge(config.System)
	if config.RPC != nil {
		if c.RPC == nil {
			c.RPC = config.RPC
		} else {
			c.RPC.Merge(config.RPC)
		}
	}
}

func (c *Config) Validate() error {
	if err := c.System.Validate(); err != nil {
		return err
	}
	if err := c.RPC.Validate(); err != nil {
		return err
	}
	return c.Consensus.Validate()
}

type RPCConfig struct {
	Modes []string `json:"modes"`
	Port  int      `json:"port"`
	Host  string   `json:"host"`
}

func (c *RPCConfig) InsertDefault() error {
	if c.Port == 0 {
		c.Port = 7887
	}
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	return nil
}

func (c *RPCConfig) Merge(config *RPCConfig) {
	if config.Host != "" {
		c.Host = config.Host
	}
	if config.Port != 0 {
		c.Port = config.Port
	}
	if len(config.Modes) != 0 {
		c.Modes = config.Modes
	}
}

func (c *RPCConfig) Validate() error {
	if c.Port < 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d for RPC is specified", c.Port)
	}
	return nil
}

type SystemConfig struct {
	Version  string `json:"version"`
	DataPath string `json:"dataPath"`
	LogLevel string `json:"logLevel"`
}

func (c *SystemConfig) InsertDefault() error {
	if c.Version == "" {
		c.Version = "0.1.0"
	}
	if c.DataPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		c.DataPath = path.Join(home, ".ember", "engine")
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

func (c *SystemConfig) Merge(config *SystemConfig) {
	if config.Version != "" {
		c.Version = config.Version
	}
	if config.DataPath != "" {
		c.DataPath = config.DataPath
	}
	if config.LogLevel != "" {
		c.LogLevel = config.LogLevel
	}
}

func (c SystemConfig) Validate() error {
	if !strings.Contain(logLevels, c.LogLevel) {
		return fmt.Errorf("log level %s is not allowed", c.LogLevel)
	}
	if c.DataPath == "" {
		return errors.New("dataPath cannot be empty")
	}
	return nil
}

type GenesisBlockConfig struct {
	FromFile string    `json:"fromFile"`
	Blob     codec.Hex `json:"blob"`
}

type GenesisConfig struct {
	Block   *GenesisBlockConfig `json:"block"`
	ChainID codec.Hex           `json:"chainID"`
}

// ConsensusConfig sets the sortition and approval parameters.
type ConsensusConfig struct {
	RewardCycleLength        uint64 `json:"rewardCycleLength,string"`
	FirstWeightedCycle       uint64 `json:"firstWeightedCycle,string"`
	MissedSortitionTolerance uint32 `json:"missedSortitionTolerance"`
}

func (c *ConsensusConfig) InsertDefault() error {
	if c.RewardCycleLength == 0 {
		c.RewardCycleLength = defaultRewardCycleLength
	}
	if c.MissedSortitionTolerance == 0 {
		c.MissedSortitionTolerance = defaultMissedSortitionTolerance
	}
	return nil
}

func (c *ConsensusConfig) Validate() error {
	if c.RewardCycleLength == 0 {
		return errors.New("rewardCycleLength must be positive")
	}
	return nil
}
