package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/morph/asset"
	"github.com/pthm-cable/morph/components"
	"github.com/pthm-cable/morph/config"
	"github.com/pthm-cable/morph/morph"
	"github.com/pthm-cable/morph/shape"
)

// spawnCloud loads shapes from path, resamples them into one particle set
// and creates a cloud entity driven by a new engine.
func (g *Game) spawnCloud(path string, tr components.Transform) (ecs.Entity, *morph.Engine, error) {
	cfg := config.Cfg()

	shapes, err := asset.Load(path, cfg.Asset.Normalize, g.rng)
	if err != nil {
		return ecs.Entity{}, nil, fmt.Errorf("loading shapes: %w", err)
	}
	set, err := shape.ResampleShapes(shapes, g.rng)
	if err != nil {
		return ecs.Entity{}, nil, fmt.Errorf("resampling shapes: %w", err)
	}

	engine, err := morph.NewEngine(set, cfg.Particles.InitialIndex, engineOptions(cfg, g.rng.Int63()))
	if err != nil {
		return ecs.Entity{}, nil, err
	}
	engine.SetColors(cfg.Derived.ColorA, cfg.Derived.ColorB)

	name := "procedural"
	if path != "" {
		name = filepath.Base(path)
	}

	cloud := components.Cloud{Engine: engine, Name: name}
	visual := components.Visual{Visible: true, Dirty: true}
	autoplay := components.Autoplay{
		Enabled:  cfg.Autoplay.Enabled,
		Interval: float32(cfg.Autoplay.Interval),
		Sequence: validSequence(cfg.Autoplay.Sequence, set.Len()),
	}
	entity := g.cloudMapper.NewEntity(&cloud, &tr, &visual, &autoplay)

	engine.Subscribe(func(ev morph.Event) {
		g.onMorphEvent(entity, ev)
	})

	slog.Info("cloud spawned", "name", name, "shapes", set.Len(), "capacity", set.Capacity)
	return entity, engine, nil
}

// engineOptions maps config onto engine options.
func engineOptions(cfg *config.Config, noiseSeed int64) morph.Options {
	restart := morph.RestartFromZero
	if cfg.Derived.Restart == config.RestartProgress {
		restart = morph.RestartFromProgress
	}
	return morph.Options{
		Duration:  float32(cfg.Morph.Duration),
		Ease:      cfg.Derived.Ease,
		Restart:   restart,
		Stagger:   float32(cfg.Morph.Stagger),
		Size:      float32(cfg.Particles.Size),
		NoiseSeed: noiseSeed,
	}
}

// validSequence drops autoplay entries that do not name a shape.
func validSequence(seq []int, shapes int) []int {
	out := make([]int, 0, len(seq))
	for _, i := range seq {
		if i < 0 || i >= shapes {
			slog.Warn("autoplay index out of range, skipping", "index", i, "shapes", shapes)
			continue
		}
		out = append(out, i)
	}
	return out
}
