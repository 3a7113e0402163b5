package engine

import (
	"shopseed/internal/faker"
	"shopseed/internal/model"
)

// chaosInjector corrupts variant sizes at a configured rate for downstream
// validation testing. It only ever touches the size field.
type chaosInjector struct {
	rng     *faker.Source
	percent float64
}

func newChaosInjector(rng *faker.Source, percent float64) *chaosInjector {
	return &chaosInjector{rng: rng, percent: percent}
}

// corruptSize swaps size into the wrong domain for the category with
// probability percent/100. A zero percent returns immediately without
// consuming randomness, so chaos-off runs are byte-identical to runs built
// without the injector.
func (c *chaosInjector) corruptSize(category, size string) string {
	if c.percent <= 0 {
		return size
	}
	if !c.rng.Chance(c.percent / 100) {
		return size
	}
	return c.rng.Pick(model.WrongSizeDomain(category))
}
