// Package paint edits a field store with brush commands.
package paint

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/Faultbox/terramesh/internal/image"
	"github.com/Faultbox/terramesh/internal/logger"
	"github.com/Faultbox/terramesh/pkg/grid"
)

// Command names.
const (
	Increase      = "increase"
	Decrease      = "decrease"
	IncreaseLarge = "increase_large"
	DecreaseLarge = "decrease_large"
	Flatten       = "flatten"
)

// Command is a height brush. Apply maps the current height of a sample to
// its new height; distance is the Chebyshev distance from the brush center
// and center is the height at the center before the stroke.
type Command struct {
	Name   string
	Radius int
	Apply  func(value, center float32, distance int) float32
}

var commands = map[string]Command{
	Increase: {
		Name:  Increase,
		Apply: func(v, _ float32, _ int) float32 { return v + 1 },
	},
	Decrease: {
		Name:  Decrease,
		Apply: func(v, _ float32, _ int) float32 { return v - 1 },
	},
	IncreaseLarge: {
		Name:   IncreaseLarge,
		Radius: 2,
		Apply:  func(v, _ float32, d int) float32 { return v + 2 - float32(d) },
	},
	DecreaseLarge: {
		Name:   DecreaseLarge,
		Radius: 2,
		Apply:  func(v, _ float32, d int) float32 { return v - 2 + float32(d) },
	},
	Flatten: {
		Name:   Flatten,
		Radius: 1,
		Apply:  func(_, c float32, _ int) float32 { return c },
	},
}

// Lookup returns the built-in command with the given name.
func Lookup(name string) (Command, error) {
	cmd, ok := commands[name]
	if !ok {
		return Command{}, fmt.Errorf("paint: unknown command %q", name)
	}
	return cmd, nil
}

// Names returns the built-in command names, sorted.
func Names() []string {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Paint applies cmd around center strength times through a single
// accessor, so the stroke becomes one edit with one direction. It returns
// the area that was written, clamped to the field.
func Paint(store *image.EditableImage2f, center grid.Vec2i, cmd Command, strength int) grid.Range2i {
	strength = max(strength, 1)
	area := grid.Range2iFromMinAndSize(center, grid.Vec2i{X: 1, Y: 1}).ExtendBothDirections(cmd.Radius)

	acc := store.RequestAccess(area)
	defer acc.Close()

	c := acc.Get(center)
	acc.Area().ForEach(func(p grid.Vec2i) {
		d := chebyshev(p, center)
		v := acc.Get(p)
		for i := 0; i < strength; i++ {
			v = cmd.Apply(v, c, d)
		}
		acc.Set(p, v)
	})

	logger.Named("paint").Debug("stroke",
		zap.String("command", cmd.Name),
		zap.Stringer("center", center),
		zap.Int("strength", strength),
		zap.Stringer("direction", acc.Direction()))
	return acc.Area()
}

// Sculpt fills (or carves, when fill is false) every voxel within radius of
// center in an occupancy store. It returns the area that was written.
func Sculpt(store *image.EditableImage3b, center grid.Vec3i, radius int, fill bool) grid.Range3i {
	area := grid.Range3iFromMinAndSize(center, grid.Vec3i{X: 1, Y: 1, Z: 1}).ExtendBothDirections(radius)

	acc := store.RequestAccess(area)
	defer acc.Close()

	acc.Area().ForEach(func(p grid.Vec3i) {
		acc.Set(p, fill)
	})

	logger.Named("paint").Debug("sculpt",
		zap.Stringer("center", center),
		zap.Int("radius", radius),
		zap.Bool("fill", fill))
	return acc.Area()
}

func chebyshev(a, b grid.Vec2i) int {
	return max(abs(a.X-b.X), abs(a.Y-b.Y))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
