//go:build wireinject
// +build wireinject

// The build tag makes sure the stub is not built in the final build.

package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/lightcycle/internal/core/arena"
)

// InitializeArena assembles an arena with its logger and event bus from cfg.
// The cleanup flushes the logger.
func InitializeArena(cfg arena.Config) (*arena.Arena, func(), error) {
	wire.Build(ArenaSet)
	return nil, nil, nil
}
