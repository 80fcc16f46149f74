package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/lightcycle/internal/core/arena"
	"github.com/zeusync/lightcycle/internal/core/events/bus"
	"github.com/zeusync/lightcycle/internal/core/observability/log"
)

var ArenaSet = wire.NewSet(
	ProvideLogConfig,
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	bus.New,
	arena.New,
)

func ProvideLogConfig(cfg arena.Config) log.Config {
	return cfg.Log
}

func ProvideLogger(cfg log.Config) (*log.Logger, func(), error) {
	logger, err := log.NewWithConfig(cfg)
	if err != nil {
		return nil, nil, err
	}
	return logger, logger.Sync, nil
}
