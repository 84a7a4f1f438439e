package clients

import (
	"fmt"
	"strings"
	"time"
)

const (
	BackoffExponential = "exponential"
	BackoffLinear      = "linear"
	BackoffConstant    = "constant"
)

// BackoffStrategy returns the wait before the retry that follows attempt
// (1-based).
type BackoffStrategy interface {
	NextDelay(attempt int) time.Duration
}

type ExponentialBackoff struct {
	Initial time.Duration
	Max     time.Duration
}

func (b ExponentialBackoff) NextDelay(attempt int) time.Duration {
	delay := b.Initial
	for i := 1; i < attempt; i++ {
		delay *= 2
		if delay >= b.Max || delay <= 0 {
			return b.Max
		}
	}
	if delay > b.Max {
		return b.Max
	}
	return delay
}

type LinearBackoff struct {
	Step time.Duration
	Max  time.Duration
}

func (b LinearBackoff) NextDelay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	delay := b.Step * time.Duration(attempt)
	if delay > b.Max || delay <= 0 {
		return b.Max
	}
	return delay
}

type ConstantBackoff struct {
	Wait time.Duration
}

func (b ConstantBackoff) NextDelay(int) time.Duration {
	return b.Wait
}

func NewBackoffStrategy(name string, base, maximum time.Duration) (BackoffStrategy, error) {
	if base <= 0 {
		base = time.Second
	}
	if maximum < base {
		maximum = base
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", BackoffExponential:
		return ExponentialBackoff{Initial: base, Max: maximum}, nil
	case BackoffLinear:
		return LinearBackoff{Step: base, Max: maximum}, nil
	case BackoffConstant:
		return ConstantBackoff{Wait: base}, nil
	default:
		return nil, fmt.Errorf("unknown backoff strategy %q", name)
	}
}
