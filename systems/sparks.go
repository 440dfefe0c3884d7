// Package systems contains the ECS systems driving contact effects.
package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/pong/components"
	"github.com/pthm-cable/pong/physics"
)

// maxSparks bounds the live entity count when contacts arrive faster than
// sparks expire.
const maxSparks = 2000

// sparkDrag is the fraction of velocity kept per millisecond.
const sparkDrag = 0.996

// SparkConfig holds emission parameters.
type SparkConfig struct {
	PerContact int
	LifetimeMs float64
	Speed      float64 // units/ms
	Spread     float64 // radians either side of the contact normal
}

// SparkSystem emits and ages spark entities. It only reads contacts and
// never writes back into the physics state.
type SparkSystem struct {
	world  *ecs.World
	mapper *ecs.Map3[components.Position, components.Velocity, components.Spark]
	filter *ecs.Filter3[components.Position, components.Velocity, components.Spark]

	cfg   SparkConfig
	rng   *rand.Rand
	count int

	expired []ecs.Entity
}

// NewSparkSystem creates a spark system with its own ECS world. Emission is
// deterministic for a given seed.
func NewSparkSystem(cfg SparkConfig, seed int64) *SparkSystem {
	world := ecs.NewWorld()
	return &SparkSystem{
		world:  world,
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Spark](world),
		filter: ecs.NewFilter3[components.Position, components.Velocity, components.Spark](world),
		cfg:    cfg,
		rng:    rand.New(rand.NewSource(seed)),
	}
}

// Emit spawns a burst of sparks at a contact point, fanned about the
// contact normal.
func (s *SparkSystem) Emit(c physics.Contact) {
	base := math.Atan2(c.Normal.Y, c.Normal.X)
	for i := 0; i < s.cfg.PerContact; i++ {
		if s.count >= maxSparks {
			return
		}

		angle := base + (s.rng.Float64()*2-1)*s.cfg.Spread
		speed := s.cfg.Speed * (0.5 + 0.5*s.rng.Float64())
		life := float32(s.cfg.LifetimeMs * (0.6 + 0.4*s.rng.Float64()))

		pos := components.Position{X: float32(c.Point.X), Y: float32(c.Point.Y)}
		vel := components.Velocity{
			X: float32(math.Cos(angle) * speed),
			Y: float32(math.Sin(angle) * speed),
		}
		spark := components.Spark{
			Life:    life,
			MaxLife: life,
			Size:    1.5 + s.rng.Float32()*1.5,
			Side:    uint8(c.Side),
		}
		s.mapper.NewEntity(&pos, &vel, &spark)
		s.count++
	}
}

// Update moves and ages every spark by dtMs and removes the expired ones.
func (s *SparkSystem) Update(dtMs float64) {
	if dtMs <= 0 {
		return
	}
	dt := float32(dtMs)
	drag := float32(math.Pow(sparkDrag, dtMs))

	// Collect first; entities cannot be removed while the query is open
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, vel, spark := query.Get()

		spark.Life -= dt
		if spark.Life <= 0 {
			s.expired = append(s.expired, query.Entity())
			continue
		}

		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
		vel.X *= drag
		vel.Y *= drag
	}

	for _, e := range s.expired {
		s.world.RemoveEntity(e)
	}
	s.count -= len(s.expired)
}

// Each calls fn for every live spark.
func (s *SparkSystem) Each(fn func(pos components.Position, spark components.Spark)) {
	query := s.filter.Query()
	for query.Next() {
		pos, _, spark := query.Get()
		fn(*pos, *spark)
	}
}

// Count returns the number of live sparks.
func (s *SparkSystem) Count() int {
	return s.count
}

// Clear removes all sparks.
func (s *SparkSystem) Clear() {
	s.expired = s.expired[:0]
	query := s.filter.Query()
	for query.Next() {
		s.expired = append(s.expired, query.Entity())
	}
	for _, e := range s.expired {
		s.world.RemoveEntity(e)
	}
	s.count = 0
}
