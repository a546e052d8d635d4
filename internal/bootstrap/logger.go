package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/ZetaFarm_Go/internal/config"
	"github.com/osse101/ZetaFarm_Go/internal/logger"
)

// SetupLogger installs the process logger from cfg. Logs go to stdout and,
// when LOG_DIR is set, to a file there. The caller closes the returned file.
func SetupLogger(cfg *config.Config) (io.Closer, error) {
	addSource := cfg.Environment == logger.EnvironmentDev

	lc := logger.NewConfig(cfg.LogLevel, cfg.LogFormat, logger.DefaultServiceName, cfg.Version, cfg.Environment, addSource)
	lc.Dir = cfg.LogDir

	closer, err := logger.InitLogger(lc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedInitLogger, err)
	}

	slog.Info(LogMsgLoggingInitialized, "level", lc.LogLevel(), "format", cfg.LogFormat)
	slog.Info(LogMsgStartingZetaFarm,
		"environment", cfg.Environment,
		"version", cfg.Version,
		"storage", cfg.StorageBackend)
	slog.Debug(LogMsgConfigurationLoaded,
		"db_host", cfg.DBHost,
		"db_port", cfg.DBPort,
		"db_name", cfg.DBName,
		"port", cfg.Port,
		"tick_interval", cfg.TickInterval,
		"workers", cfg.WorkerCount)

	return closer, nil
}
