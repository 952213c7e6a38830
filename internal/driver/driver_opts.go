package driver

import "time"

type GameDriverOpt func(*GameDriver)

// WithTickLength sets how often the managers are ticked. Non-positive
// lengths keep the default.
func WithTickLength(tickLength time.Duration) GameDriverOpt {
	return func(d *GameDriver) {
		if tickLength > 0 {
			d.tickLength = tickLength
		}
	}
}

// WithMaxFailures sets how many failing ticks in a row stop the driver.
// Values below one keep the default.
func WithMaxFailures(n int) GameDriverOpt {
	return func(d *GameDriver) {
		if n > 0 {
			d.maxFailures = n
		}
	}
}
