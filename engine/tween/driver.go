package tween

// Ticker is anything that advances with frame time. Both Value and Vector
// satisfy it, as do higher-level components that own tweens internally.
type Ticker interface {
	// Tick advances by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds since the previous tick
	Tick(dt float32)
}

// Driver advances a fixed set of Tickers once per frame. It is the single
// timing source for all animated values: the engine calls Tick from its tick
// loop and every registered animation moves in lockstep, independent of the
// render cadence that reads their current values.
type Driver interface {
	Ticker

	// Add registers tickers with the driver. Not safe to call concurrently
	// with Tick; register everything before the loop starts.
	//
	// Parameters:
	//   - tickers: the tickers to register
	Add(tickers ...Ticker)

	// Stop cancels every registered Value and Vector mid-flight. Tickers of
	// other types are left to their own teardown. Used when the session is
	// cancelled; stopped tweens make no guarantee of reaching their targets.
	Stop()
}

type driver struct {
	tickers []Ticker
	stopped bool
}

var _ Driver = &driver{}

// NewDriver creates an empty Driver.
//
// Returns:
//   - Driver: the newly created driver
func NewDriver() Driver {
	return &driver{}
}

func (d *driver) Add(tickers ...Ticker) {
	d.tickers = append(d.tickers, tickers...)
}

func (d *driver) Tick(dt float32) {
	if d.stopped {
		return
	}
	for _, t := range d.tickers {
		t.Tick(dt)
	}
}

func (d *driver) Stop() {
	d.stopped = true
	for _, t := range d.tickers {
		switch v := t.(type) {
		case Value:
			v.Cancel()
		case Vector:
			v.Cancel()
		}
	}
}
