package connection

import (
	"time"
)

// CalculateBlockDelay returns the number of blocks the host must wait before
// a packet proof is valid: ceil(delayPeriod / maxExpectedTimePerBlock),
// computed on whole seconds. A zero divisor or a zero delay gives no delay.
func CalculateBlockDelay(delayPeriod, maxExpectedTimePerBlock time.Duration) uint64 {
	delay := uint64(delayPeriod / time.Second)
	maxExpected := uint64(maxExpectedTimePerBlock / time.Second)
	if maxExpected == 0 || delay == 0 {
		return 0
	}

	if delay%maxExpected == 0 {
		return delay / maxExpected
	}
	return delay/maxExpected + 1
}
