// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ava-labs/launchpad/api"
	"github.com/ava-labs/launchpad/api/jsonrpc"
	"github.com/ava-labs/launchpad/api/ws"
	"github.com/ava-labs/launchpad/config"
	"github.com/ava-labs/launchpad/consts"
	"github.com/ava-labs/launchpad/server"
	"github.com/ava-labs/launchpad/vm"
)

const baseURL = "/ext"

var (
	configFile string
	dataDir    string
	httpPort   uint16
)

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Run a launchpad node",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load(configFile)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.VM.DataDir = dataDir
		}
		if cmd.Flags().Changed("http-port") {
			cfg.HTTPPort = httpPort
		}
		log := cfg.NewLogger(consts.Name, nil)
		defer log.Stop()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runNode(ctx, cfg, log)
	},
}

func initNodeFlags() {
	nodeCmd.Flags().StringVar(
		&configFile,
		"config",
		"",
		"path to a YAML or JSON config file",
	)
	nodeCmd.Flags().StringVar(
		&dataDir,
		"data-dir",
		"",
		"directory to keep state in (empty keeps state in memory)",
	)
	nodeCmd.Flags().Uint16Var(
		&httpPort,
		"http-port",
		0,
		"port to serve the API on",
	)
}

// runNode serves the API until [ctx] is cancelled.
func runNode(ctx context.Context, cfg *config.Config, log logging.Logger) error {
	v, err := vm.New(cfg.VM, log)
	if err != nil {
		return err
	}
	listener, err := net.Listen("tcp", cfg.GetHTTPAddress())
	if err != nil {
		return errors.Join(err, v.Close())
	}
	srv, err := server.New(
		log,
		listener,
		server.Config{
			HTTPConfig:      server.HTTPConfig{ReadHeaderTimeout: cfg.ReadHeaderTimeout},
			BaseURL:         baseURL,
			AllowedOrigins:  cfg.AllowedOrigins,
			AllowedHosts:    cfg.AllowedHosts,
			ShutdownTimeout: cfg.ShutdownTimeout,
		},
		server.MaxRequestSize(cfg.MaxRequestSize),
	)
	if err != nil {
		return errors.Join(err, listener.Close(), v.Close())
	}
	factories := []api.HandlerFactory[api.VM]{jsonrpc.JSONRPCServerFactory{
		// unsigned writes are only safe on a local node
		ReadOnly: !cfg.VM.EnableFaucet,
	}}
	if cfg.EnableTradeFeed {
		factories = append(factories, ws.WebSocketServerFactory{Config: cfg.TradeFeed})
	}
	for _, factory := range factories {
		handler, err := factory.New(v)
		if err != nil {
			return errors.Join(err, listener.Close(), v.Close())
		}
		if err := srv.AddRoute(handler.Handler, strings.TrimPrefix(handler.Path, "/"), ""); err != nil {
			return errors.Join(err, listener.Close(), v.Close())
		}
	}
	if err := srv.AddRoute(server.NewMetricsHandler(v.Gatherer()), "metrics", ""); err != nil {
		return errors.Join(err, listener.Close(), v.Close())
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Dispatch(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down",
			zap.Error(context.Cause(gctx)),
		)
		errs := wrappers.Errs{}
		errs.Add(
			srv.Shutdown(),
			v.Close(),
		)
		return errs.Err
	})
	return g.Wait()
}
