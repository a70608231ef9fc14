package node

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/Siasom1/shinde-chain/chainspec"
	"github.com/Siasom1/shinde-chain/core/blockchain"
	"github.com/Siasom1/shinde-chain/core/genesis"
	"github.com/Siasom1/shinde-chain/events"
	"github.com/Siasom1/shinde-chain/explorer"
	"github.com/Siasom1/shinde-chain/log"
	"github.com/Siasom1/shinde-chain/params"
	"github.com/Siasom1/shinde-chain/rpc"
	"github.com/Siasom1/shinde-chain/state"
	"github.com/Siasom1/shinde-chain/telemetry"
	"github.com/Siasom1/shinde-chain/wasm"
	"go.uber.org/zap"
)

const telemetryDialTimeout = 10 * time.Second

type Node struct {
	Config    *Config
	Logger    *log.Logger
	Runtime   wasm.Provider
	Spec      *chainspec.Spec
	Chain     *blockchain.Blockchain
	State     *state.State
	Events    *events.EventBus
	RPCServer *rpc.RPCServer
	Explorer  *explorer.ExplorerAPI
	Telemetry *telemetry.Client

	cancel context.CancelFunc
}

// NewNode prepares a node. A nil runtime reads cfg.Runtime from disk.
func NewNode(cfg *Config, runtime wasm.Provider) *Node {
	if runtime == nil {
		runtime = wasm.FileProvider{Path: cfg.Runtime}
	}
	return &Node{
		Config:  cfg,
		Logger:  log.NewLogger(cfg.LogLevel).Named("node"),
		Runtime: runtime,
	}
}

func (n *Node) Start(ctx context.Context) error {
	n.Logger.Info("starting Shinde node",
		zap.String("chain", n.Config.Chain),
		zap.String("datadir", n.Config.DataDir),
		zap.Int("rpcPort", n.Config.RPCPort))

	// ------------------------------------------------
	// 1. Chain spec
	// ------------------------------------------------
	spec, err := ResolveChainSpec(n.Config.Chain, n.Runtime)
	if err != nil {
		return fmt.Errorf("load chain spec: %w", err)
	}
	n.Spec = spec

	// ------------------------------------------------
	// 2. Genesis + blockchain
	// ------------------------------------------------
	gen, err := spec.BuildGenesis()
	if err != nil {
		return fmt.Errorf("build genesis: %w", err)
	}
	block, err := gen.Block()
	if err != nil {
		return fmt.Errorf("genesis block: %w", err)
	}

	chainCfg := blockchain.DefaultChainConfig(n.Config.DataDir, spec.ID, block)
	bc, err := blockchain.NewBlockchain(chainCfg)
	if err != nil {
		n.Logger.Error("failed to open blockchain", zap.Error(err))
		return err
	}
	n.Chain = bc

	// ------------------------------------------------
	// 3. State
	// ------------------------------------------------
	st, err := state.NewState(filepath.Join(chainCfg.ChainDir(), "state"))
	if err != nil {
		return fmt.Errorf("open state db: %w", err)
	}
	n.State = st

	if err := n.initState(st, gen); err != nil {
		n.closeStores()
		return err
	}

	n.Logger.Info("loaded chain head",
		zap.Uint64("number", bc.Head().Number()),
		zap.Stringer("hash", bc.Head().Hash()),
		zap.Stringer("genesis", bc.GenesisHash()))

	ctx, n.cancel = context.WithCancel(ctx)
	n.Events = events.NewEventBus()

	// ------------------------------------------------
	// 4. RPC server + explorer
	// ------------------------------------------------
	n.RPCServer = rpc.NewRPCServer(
		fmt.Sprintf(":%d", n.Config.RPCPort),
		rpc.NewHandlers(spec, bc, st),
		n.Logger,
	)
	n.Explorer = explorer.NewExplorerAPI(spec, bc, st, n.Events)
	n.RPCServer.Mount("/explorer/", n.Explorer.Routes())

	if err := n.RPCServer.Start(); err != nil {
		n.cancel()
		n.closeStores()
		return fmt.Errorf("start rpc: %w", err)
	}

	// ------------------------------------------------
	// 5. Telemetry
	// ------------------------------------------------
	if n.Config.TelemetryEnabled && len(spec.Extensions.Telemetry) > 0 {
		n.Telemetry = telemetry.NewClient(spec.Extensions.Telemetry, telemetry.NodeInfo{
			Name:           params.ClientName,
			Chain:          spec.Name,
			GenesisHash:    bc.GenesisHash().Hex(),
			Implementation: params.ProtocolID,
			Version:        params.ClientVersion,
		}, n.Logger)

		dialCtx, cancel := context.WithTimeout(ctx, telemetryDialTimeout)
		err := n.Telemetry.Connect(dialCtx)
		cancel()
		if err != nil {
			// telemetry is best effort
			n.Logger.Warn("telemetry unavailable", zap.Error(err))
		} else {
			go n.Telemetry.Run(ctx, n.Events.SubscribeBlocks())
		}
	}

	// announce the best block to subscribers
	n.Events.PublishBlock(bc.Head())

	n.Logger.Info("node started", zap.String("rpc", n.RPCServer.Addr()))
	return nil
}

// initState commits genesis on first start, or checks the stored root.
func (n *Node) initState(st *state.State, gen *genesis.State) error {
	want, err := gen.Root()
	if err != nil {
		return fmt.Errorf("genesis root: %w", err)
	}

	ok, err := st.Initialized()
	if err != nil {
		return err
	}
	if !ok {
		if _, err := st.CommitGenesis(gen); err != nil {
			return fmt.Errorf("commit genesis: %w", err)
		}
		n.Logger.Info("genesis state committed",
			zap.Int("accounts", len(gen.Balances)),
			zap.Stringer("root", want))
		return nil
	}

	have, err := st.GenesisRoot()
	if err != nil {
		return err
	}
	if have != want {
		return fmt.Errorf("%w: state root %s, spec %s", blockchain.ErrGenesisMismatch, have, want)
	}
	return nil
}

func (n *Node) closeStores() {
	if n.State != nil {
		if err := n.State.Close(); err != nil {
			n.Logger.Warn("close state", zap.Error(err))
		}
		n.State = nil
	}
}

func (n *Node) Stop(ctx context.Context) error {
	n.Logger.Info("stopping Shinde node")

	if n.cancel != nil {
		n.cancel()
	}
	if n.Events != nil {
		n.Events.Close()
	}

	var errs []error
	if n.Telemetry != nil {
		errs = append(errs, n.Telemetry.Close())
	}
	if n.RPCServer != nil {
		errs = append(errs, n.RPCServer.Stop(ctx))
	}
	if n.State != nil {
		errs = append(errs, n.State.Close())
	}

	n.State = nil

	n.Logger.Info("node stopped")
	_ = n.Logger.Sync()
	return errors.Join(errs...)
}
