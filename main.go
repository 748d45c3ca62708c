// Command retro is the Retro Accessories storefront. It runs the HTTP API
// (retro serve) or drives the same cart and session from the shell, with
// state kept in a key-value store between invocations.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"retro-accessories/apiclient"
	"retro-accessories/config"
	"retro-accessories/demo"
	"retro-accessories/service"
	"retro-accessories/store"
)

// app is the composition root shared by every subcommand.
type app struct {
	// flags
	configPath  string
	verbose     bool
	storeDriver string
	storePath   string
	backendName string
	addr        string
	latency     bool

	cfg   *config.Config
	log   *zap.Logger
	store store.Store
	svc   *service.Service
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{}

	root := &cobra.Command{
		Use:           "retro",
		Short:         "Retro Accessories storefront",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "path to a YAML config file (default "+config.DefaultConfigPath()+")")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.StringVar(&a.storeDriver, "store", "", "state store driver (memory, file, postgres, redis, sqlite)")
	pf.StringVar(&a.storePath, "store-path", "", "directory for the file and sqlite stores")
	pf.StringVar(&a.backendName, "backend", "", "collaborator: demo or api")
	pf.StringVar(&a.addr, "addr", "", "listen address for serve")
	pf.BoolVar(&a.latency, "latency", true, "simulate network latency in the demo backend")

	root.AddCommand(
		newServeCmd(a),
		newCatalogCmd(a),
		newCartCmd(a),
		newAuthCmd(a),
		newCheckoutCmd(a),
		newOrdersCmd(a),
		newProfileCmd(a),
		newAdminCmd(a),
		newHealthCmd(a),
		newConfigCmd(a),
	)
	return root, a
}

// loadConfig reads the config file and applies flag overrides.
func (a *app) loadConfig(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configFile())
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("store") {
		cfg.Store.Driver = a.storeDriver
	}
	if flags.Changed("store-path") {
		cfg.Store.Path = a.storePath
	}
	if flags.Changed("backend") {
		cfg.Backend = a.backendName
	}
	if flags.Changed("addr") {
		cfg.ListenAddr = a.addr
	}
	if flags.Changed("latency") {
		cfg.SimulateLatency = a.latency
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.log, err = newLogger(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func (a *app) configFile() string {
	if a.configPath != "" {
		return a.configPath
	}
	return config.DefaultConfigPath()
}

// setup loads config and wires the store, backend and service.
func (a *app) setup(cmd *cobra.Command) error {
	if err := a.loadConfig(cmd); err != nil {
		return err
	}
	cfg := a.cfg

	var err error
	a.store, err = store.Open(store.Options{
		Driver:        cfg.Store.Driver,
		Path:          cfg.Store.Path,
		DSN:           cfg.Store.DSN,
		RedisAddr:     cfg.Store.RedisAddr,
		RedisPassword: cfg.Store.RedisPassword,
		RedisDB:       cfg.Store.RedisDB,
		KeyPrefix:     cfg.Store.KeyPrefix,
	})
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Driver, err)
	}

	var backend service.Backend
	switch cfg.Backend {
	case "api":
		backend = a.apiClient()
	default:
		backend = demo.New(cfg.SimulateLatency, a.log.Named("demo"))
	}

	a.svc = service.NewService(
		service.NewCartManager(a.store, a.log.Named("cart")),
		service.NewSessionManager(a.store, backend, a.log.Named("session")),
		backend,
		a.log,
	)
	a.log.Debug("ready",
		zap.String("backend", cfg.Backend),
		zap.String("store", cfg.Store.Driver),
	)
	return nil
}

func (a *app) apiClient() *apiclient.Client {
	return apiclient.New(a.cfg.APIBaseURL, a.cfg.GetAPITimeout(), a.log.Named("api"))
}

// close releases the store and flushes the logger. Safe to call twice.
func (a *app) close() {
	if a.store != nil {
		if err := a.store.Close(); err != nil && a.log != nil {
			a.log.Warn("closing store", zap.Error(err))
		}
		a.store = nil
	}
	if a.log != nil {
		_ = a.log.Sync()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, err
	}
	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(lvl)
	return zc.Build()
}

func main() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
