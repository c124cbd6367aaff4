// glomebench spawns a pile of bodies over static geometry and steps the
// world for a fixed amount of simulated time. Useful to measure solver cost
// at different body counts and to capture CPU/heap profiles.
package main

import (
	"flag"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/pkg/profile"

	"github.com/oliverbestmann/glome"
	"github.com/oliverbestmann/glome/gm"
	"github.com/oliverbestmann/glome/telemetry"
)

func main() {
	var (
		bodyCount   = flag.Int("bodies", 200, "number of dynamic bodies to spawn")
		seconds     = flag.Float64("seconds", 10, "simulated seconds to run")
		configPath  = flag.String("config", "", "optional YAML config file")
		csvPath     = flag.String("csv", "", "write per-tick telemetry to this CSV file")
		profileMode = flag.String("profile", "", "enable profiling: cpu or mem")
	)
	flag.Parse()

	switch *profileMode {
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	}

	config := glome.DefaultConfig()
	if *configPath != "" {
		loaded, err := glome.LoadConfig(*configPath)
		if err != nil {
			slog.Error("loading config failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		config = loaded
	}

	world := glome.NewWorld(config)
	spawnScene(world, *bodyCount)

	slog.Info("bench starting",
		slog.Int("bodies", *bodyCount),
		slog.Float64("seconds", *seconds))

	recorder := telemetry.NewRecorder()
	dt := config.FixedStep

	for elapsed := float32(0); elapsed < float32(*seconds); elapsed += dt {
		world.Update(dt)

		events := world.DrainEvents()
		triggers := 0
		for _, ev := range events {
			switch ev.Kind {
			case glome.EventTriggerEnter, glome.EventTriggerStay, glome.EventTriggerExit:
				triggers++
			}
		}

		recorder.Record(telemetry.StepRecord{
			Tick:     world.Tick(),
			Bodies:   world.BodyCount(),
			Events:   len(events),
			Triggers: triggers,
			Step:     world.Stats().Total.Latest,
		})
	}

	summary := recorder.Summarize()
	slog.Info("bench finished",
		slog.Int("steps", summary.Steps),
		slog.Duration("mean_step", summary.MeanStep),
		slog.Duration("stddev_step", summary.StdDevStep),
		slog.Duration("max_step", summary.MaxStep),
		slog.Int("events", summary.TotalEvents))

	if *csvPath != "" {
		if err := recorder.WriteCSV(*csvPath); err != nil {
			slog.Error("writing telemetry failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		slog.Info("telemetry written", slog.String("path", *csvPath))
	}
}

// spawnScene builds a floor plane, a few walls, one trigger volume and a
// cloud of falling spheres and boxes.
func spawnScene(world *glome.World, bodies int) {
	world.AddStaticCollider(glome.StaticCollider{
		Shape:    glome.NewPlane(gm.Vec4{Y: 1}, 0),
		Material: glome.Material{Friction: 0.6, Restitution: 0.2},
	})

	for axis := 0; axis < 4; axis++ {
		if axis == 1 {
			continue // the floor handles y
		}
		for _, dir := range []float32{-1, 1} {
			normal := gm.Vec4{}.WithAxis(axis, -dir)
			world.AddStaticCollider(glome.StaticCollider{
				Shape: glome.NewPlane(normal, -30),
			})
		}
	}

	world.AddStaticCollider(glome.StaticCollider{
		Shape:    glome.NewBox(gm.Vec4Of(4, 4, 4, 4)),
		Position: gm.Vec4{Y: 2},
		Trigger:  true,
		Filter:   glome.Filter{Membership: 1, Mask: glome.LayerAll},
	})

	rng := rand.New(rand.NewPCG(1, 2))
	randPos := func() gm.Vec4 {
		return gm.Vec4Of(
			rng.Float32()*40-20,
			rng.Float32()*20+5,
			rng.Float32()*40-20,
			rng.Float32()*40-20,
		)
	}

	for i := range bodies {
		shape := glome.NewSphere(0.5)
		if i%3 == 0 {
			shape = glome.NewBox(gm.Vec4Of(0.5, 0.5, 0.5, 0.5))
		}

		world.AddBody(glome.Body{
			Position:       randPos(),
			Shape:          shape,
			Mass:           1,
			Type:           glome.BodyDynamic,
			GravityEnabled: true,
			Material:       glome.Material{Friction: 0.4, Restitution: 0.3},
		})
	}
}
