// Package engine wires the consensus coordinator, chain storage and RPC
// surface into one runnable node.
package engine

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/EmberHQ/ember-engine/pkg/blockchain"
	"github.com/EmberHQ/ember-engine/pkg/consensus"
	"github.com/EmberHQ/ember-engine/pkg/db"
	"github.com/EmberHQ/ember-engine/pkg/engine/config"
	"github.com/EmberHQ/ember-engine/pkg/engine/endpoint"
	"github.com/EmberHQ/ember-engine/pkg/log"
	"github.com/EmberHQ/ember-engine/pkg/router"
	"github.com/EmberHQ/ember-engine/pkg/rpc"
)

type Engine struct {
	indexer     consensus.BurnIndexer
	ctx         context.Context
	cancel      context.CancelFunc
	logger      log.Logger
	config      *config.Config
	initialized bool

	// instances
	router       *router.Router
	blockchainDB *db.DB
	chain        *blockchain.Chain
	coordinator  *consensus.Coordinator
	server       *rpc.RPCServer
}

func NewEngine(indexer consensus.BurnIndexer, config *config.Config) *Engine {
	return &Engine{
		indexer:     indexer,
		config:      config,
		initialized: false,
	}
}

func (e *Engine) Start() error {
	if err := e.config.InsertDefault(); err != nil {
		return err
	}
	if err := e.init(); err != nil {
		return err
	}
	genesisHeader, err := config.ReadGenesisHeader(e.config)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.ctx = ctx
	e.cancel = cancel
	defer e.cancel()

	dataPath, err := resolvedDataPath(e.config.System.DataPath)
	if err != nil {
		return err
	}
	logger, err := log.NewLogger(e.config.System.LogLevel)
	if err != nil {
		return err
	}
	e.logger = logger
	e.logger.Infof("Starting engine with data-path %s", dataPath)
	blockchainDB, err := db.NewDB(filepath.Join(dataPath, "data", "blockchain.db"))
	if err != nil {
		return err
	}
	e.blockchainDB = blockchainDB
	if err := e.router.Init(e.logger.With("module", "router")); err != nil {
		return err
	}

	if err := e.coordinator.Init(&consensus.CoordinatorInitParam{
		CTX:      ctx,
		Logger:   e.logger,
		Database: blockchainDB,
		Genesis:  genesisHeader,
	}); err != nil {
		return err
	}

	chainEndpoint := endpoint.NewChainEndpoint(e.chain, e.coordinator)
	for method, handler := range chainEndpoint.Endpoint() {
		if err := e.router.RegisterEndpoint("chain", method, handler); err != nil {
			return err
		}
	}
	consensusEndpoint := endpoint.NewConsensusEndpoint(e.chain, e.coordinator)
	for method, handler := range consensusEndpoint.Endpoint() {
		if err := e.router.RegisterEndpoint("consensus", method, handler); err != nil {
			return err
		}
	}
	systemEndpoint := endpoint.NewSystemEndpoint(e.config, e.chain, e.coordinator)
	for method, handler := range systemEndpoint.Endpoint() {
		if err := e.router.RegisterEndpoint("system", method, handler); err != nil {
			return err
		}
	}
	e.initialized = true

	e.logger.Info("Starting engine...")
	go func() {
		if err := e.coordinator.Start(); err != nil {
			e.logger.Error("Fail to start coordinator. stopping")
			e.Stop()
		}
	}()

	e.server = rpc.NewRPCServer(
		e.logger,
		e.config.RPC.Modes,
		e.router,
		e.config.RPC.Port,
		e.config.RPC.Host,
		"",
	)
	go func() {
		if err := e.server.ListenAndServe(); err != nil {
			e.logger.Error("Fail to start RPC server. stopping")
			e.Stop()
		}
	}()
	go e.handleEvents()

	<-ctx.Done()
	if e.server != nil {
		e.server.Close()
	}
	if err := e.coordinator.Stop(); err != nil {
		e.logger.Errorf("Fail to stop coordinator with %v", err)
	}
	if err := e.blockchainDB.Close(); err != nil {
		e.logger.Errorf("Fail to close blockchain database with %v", err)
	}
	return nil
}

// OnBurnBlock forwards a burn chain notification to the coordinator. It is
// dropped until the engine finished initializing.
func (e *Engine) OnBurnBlock() {
	if !e.initialized {
		return
	}
	e.coordinator.OnBurnBlock()
}

func (e *Engine) Stop() {
	e.logger.Info("Closing engine")
	e.cancel()
}

func (e *Engine) init() error {
	e.chain = blockchain.NewChain(&blockchain.ChainConfig{
		ChainID: e.config.Genesis.ChainID,
	})
	e.coordinator = consensus.NewCoordinator(&consensus.CoordinatorConfig{
		CTX:                      e.ctx,
		Chain:                    e.chain,
		Indexer:                  e.indexer,
		RewardCycleLength:        e.config.Consensus.RewardCycleLength,
		FirstWeightedCycle:       e.config.Consensus.FirstWeightedCycle,
		MissedSortitionTolerance: e.config.Consensus.MissedSortitionTolerance,
	})
	e.router = router.NewRouter()
	return nil
}

func resolvedDataPath(dataPath string) (string, error) {
	if strings.Contains(dataPath, "~") {
		homedir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataPath = strings.ReplaceAll(dataPath, "~", homedir)
	}
	return filepath.Abs(dataPath)
}
