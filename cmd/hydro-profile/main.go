// Profiling:
// go build ./cmd/hydro-profile
// ./hydro-profile && go tool pprof -http=":8000" -nodefraction=0.001 ./hydro-profile mem.pprof

package main

import (
	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"

	"pkg.world.dev/hydro"
	"pkg.world.dev/hydro/entity"
)

type pos struct {
	X, Y, Z float64
}

type vel struct {
	X, Y, Z float64
}

type model uint32

func main() {
	cfg, err := hydro.LoadConfig()
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to load config")
	}
	universe, err := hydro.NewUniverse(hydro.WithConfig(cfg))
	if err != nil {
		zlog.Fatal().Err(err).Msg("failed to create universe")
	}
	defer func() {
		if err := universe.Close(); err != nil {
			zlog.Error().Err(err).Msg("failed to close universe")
		}
	}()

	rounds := 20
	iters := 200
	numEntities := 1000
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(universe, rounds, iters, numEntities)
	p.Stop()
}

func run(universe *hydro.Universe, rounds, iters, numEntities int) {
	entries := make([]hydro.Tuple, numEntities)
	for i := range entries {
		entries[i] = hydro.Tuple{pos{X: float64(i)}, vel{X: 1}}
	}
	for r := 0; r < rounds; r++ {
		world := universe.CreateWorld()
		for i := 0; i < iters; i++ {
			entities, err := world.InsertFrom(hydro.Tuple{model(i % 4)}, entries)
			if err != nil {
				zlog.Fatal().Err(err).Msg("insert failed")
			}
			step(world, entities)
			for _, e := range entities {
				world.Delete(e)
			}
		}
		world.LogWorld(zerolog.InfoLevel)
	}
}

func step(world *hydro.World, entities []entity.Entity) {
	for _, e := range entities {
		p, ok := hydro.Component[pos](world, e)
		if !ok {
			continue
		}
		v, ok := hydro.Component[vel](world, e)
		if !ok {
			continue
		}
		p.X += v.X
		p.Y += v.Y
		p.Z += v.Z
	}
}
