// Package consumption computes the consumed volume between two successive
// meter index readings, correcting for index rollover on meters whose index
// was already near display capacity
package consumption

import "errors"

// Defaults for five digit mechanical meters
const (
	DefaultMeterMax       = 99999
	DefaultRolloverWindow = 1000
)

// ErrIndexRegression reports a proposed index lower than the previous one
// without a plausible rollover condition
var ErrIndexRegression = errors.New("new index must be >= previous index except on meter rollover")

// ErrNegativeIndex reports a negative meter index
var ErrNegativeIndex = errors.New("meter index must be non-negative")

// Options carries the per-meter capacity knobs
// zero values fall back to the five digit defaults
type Options struct {
	// MeterMax is the highest index the meter can display before wrapping to 0
	MeterMax int64
	// RolloverWindow is how close to MeterMax the previous index must be for a
	// lower proposed index to be read as a wrap instead of a bad submission
	RolloverWindow int64
}

func (o Options) withDefaults() Options {
	if o.MeterMax <= 0 {
		o.MeterMax = DefaultMeterMax
	}
	if o.RolloverWindow <= 0 {
		o.RolloverWindow = DefaultRolloverWindow
	}
	return o
}

// Result is the derived consumption for one submission
type Result struct {
	Consumption int64
	Rollover    bool
}

// Compute derives consumption from the previous and proposed meter indices
//
// proposed >= previous is the normal case. proposed < previous is accepted
// only when previous sits within RolloverWindow of MeterMax, in which case
// the index is assumed to have wrapped past the meter's capacity. Anything
// else is an index regression and must not be persisted
func Compute(previous, proposed int64, opts Options) (Result, error) {
	if previous < 0 || proposed < 0 {
		return Result{}, ErrNegativeIndex
	}
	o := opts.withDefaults()

	if proposed >= previous {
		return Result{Consumption: proposed - previous}, nil
	}
	if previous >= o.MeterMax-o.RolloverWindow {
		return Result{
			Consumption: (o.MeterMax - previous) + proposed,
			Rollover:    true,
		}, nil
	}
	return Result{}, ErrIndexRegression
}
