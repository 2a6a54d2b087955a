package di

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/do/v2"

	"github.com/omarluq/upswitch/internal/config"
	"github.com/omarluq/upswitch/internal/controller"
	"github.com/omarluq/upswitch/internal/logging"
	"github.com/omarluq/upswitch/internal/nginx"
	"github.com/omarluq/upswitch/internal/notify"
	"github.com/omarluq/upswitch/internal/probe"
	"github.com/omarluq/upswitch/internal/state"
)

// Service wrapper types for DI registration.

// ConfigService wraps the loaded and validated configuration.
type ConfigService struct {
	Config *config.Config
}

// LoggerService wraps the zerolog logger.
type LoggerService struct {
	Logger *zerolog.Logger
}

// ProberService wraps the reachability prober.
type ProberService struct {
	Prober probe.Prober
}

// StoreService wraps the run state store.
type StoreService struct {
	Store *state.Store
}

// DispatcherService wraps the notification dispatcher.
type DispatcherService struct {
	Dispatcher *notify.Dispatcher
}

// ControllerService wraps the run orchestrator.
type ControllerService struct {
	Controller *controller.Controller
}

// NewConfig loads and validates the configuration file.
func NewConfig(i do.Injector) (*ConfigService, error) {
	path := do.MustInvokeNamed[string](i, ConfigPathKey)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &ConfigService{Config: cfg}, nil
}

// NewLogger builds the run-scoped logger.
func NewLogger(i do.Injector) (*LoggerService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)

	logger, err := logging.New(cfgSvc.Config.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	logger = logging.WithRunID(logger)

	return &LoggerService{Logger: &logger}, nil
}

// NewProber builds the TCP reachability prober.
func NewProber(i do.Injector) (*ProberService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)

	return &ProberService{
		Prober: probe.NewTCPProber(cfgSvc.Config.Probe, logSvc.Logger),
	}, nil
}

// NewStore builds the run state store.
func NewStore(i do.Injector) (*StoreService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)

	return &StoreService{
		Store: state.NewStore(cfgSvc.Config.State.GetPath(), logSvc.Logger),
	}, nil
}

// NewDispatcher builds the notification dispatcher with the configured
// channel variants.
func NewDispatcher(i do.Injector) (*DispatcherService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)

	client := &http.Client{Timeout: 10 * time.Second}
	channels, err := cfgSvc.Config.Notify.BuildChannels(client, logSvc.Logger)
	if err != nil {
		return nil, err
	}

	return &DispatcherService{
		Dispatcher: notify.NewDispatcher(channels, logSvc.Logger),
	}, nil
}

// NewController assembles the run orchestrator.
func NewController(i do.Injector) (*ControllerService, error) {
	cfgSvc := do.MustInvoke[*ConfigService](i)
	logSvc := do.MustInvoke[*LoggerService](i)
	probeSvc := do.MustInvoke[*ProberService](i)
	storeSvc := do.MustInvoke[*StoreService](i)
	dispSvc := do.MustInvoke[*DispatcherService](i)

	cfg := cfgSvc.Config
	ctrl := controller.New(controller.Params{
		Candidates:    cfg.Candidates,
		Prober:        probeSvc.Prober,
		Scanner:       nginx.NewScanner(cfg.Nginx.ConfDir, logSvc.Logger),
		Rewriter:      nginx.NewRewriter(cfg.Nginx.BackupEnabled(), logSvc.Logger),
		Reloader:      nginx.NewReloader(cfg.Nginx.GetReloadCommand(), logSvc.Logger),
		Store:         storeSvc.Store,
		Dispatcher:    dispSvc.Dispatcher,
		DownThreshold: cfg.Notify.GetDownThreshold(),
		Logger:        logSvc.Logger,
	})

	return &ControllerService{Controller: ctrl}, nil
}
