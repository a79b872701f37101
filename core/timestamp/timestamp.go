// Package timestamp implements the nanosecond timestamps carried by consensus
// states and packet timeouts.
package timestamp

import (
	"math"
	"time"
)

// Timestamp is a number of nanoseconds since the Unix epoch. The zero value
// means "no timestamp".
type Timestamp struct {
	nanos uint64
}

// None returns the unset timestamp.
func None() Timestamp { return Timestamp{} }

// FromNanoseconds returns the timestamp n nanoseconds after the epoch; 0 gives
// the unset timestamp.
func FromNanoseconds(n uint64) Timestamp { return Timestamp{nanos: n} }

// FromTime converts t. Times at or before the epoch give the unset timestamp.
func FromTime(t time.Time) Timestamp {
	n := t.UnixNano()
	if n <= 0 {
		return None()
	}
	return Timestamp{nanos: uint64(n)}
}

// Nanoseconds returns the raw value, 0 when unset.
func (t Timestamp) Nanoseconds() uint64 { return t.nanos }

// IsSet reports whether t carries a time.
func (t Timestamp) IsSet() bool { return t.nanos != 0 }

// Time returns t as a UTC time, or the zero time when unset.
func (t Timestamp) Time() time.Time {
	if !t.IsSet() {
		return time.Time{}
	}
	if t.nanos > math.MaxInt64 {
		return time.Unix(0, math.MaxInt64).UTC()
	}
	return time.Unix(0, int64(t.nanos)).UTC()
}

// Add returns t+d, saturating at the maximum value. Adding to an unset
// timestamp keeps it unset.
func (t Timestamp) Add(d time.Duration) Timestamp {
	if !t.IsSet() || d <= 0 {
		return t
	}
	if t.nanos > math.MaxUint64-uint64(d) {
		return Timestamp{nanos: math.MaxUint64}
	}
	return Timestamp{nanos: t.nanos + uint64(d)}
}

// After reports whether t is strictly after o. Unset timestamps are never
// after anything.
func (t Timestamp) After(o Timestamp) bool {
	return t.IsSet() && o.IsSet() && t.nanos > o.nanos
}

// CheckExpiry compares t (the current time of a chain) with a deadline. The
// deadline has expired when t is strictly after it; the result is Unknown if
// either timestamp is unset.
func (t Timestamp) CheckExpiry(deadline Timestamp) Expiry {
	if !t.IsSet() || !deadline.IsSet() {
		return Unknown
	}
	if t.nanos > deadline.nanos {
		return Expired
	}
	return NotExpired
}

func (t Timestamp) String() string {
	if !t.IsSet() {
		return "NoTimestamp"
	}
	return t.Time().Format(time.RFC3339Nano)
}

// Expiry is the three-way outcome of comparing a chain time with a deadline.
// The zero value is none of them.
type Expiry uint8

const (
	expiryInvalid Expiry = iota
	Expired
	NotExpired
	Unknown
)

func (e Expiry) String() string {
	switch e {
	case Expired:
		return "Expired"
	case NotExpired:
		return "NotExpired"
	case Unknown:
		return "Unknown"
	default:
		return "Invalid"
	}
}
