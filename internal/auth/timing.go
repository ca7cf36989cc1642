package auth

import (
	"crypto/rand"
	"encoding/binary"
	"time"
)

// TimingConfig controls the artificial latency around login
type TimingConfig struct {
	BaseDelay      time.Duration
	RandomDelay    time.Duration
	DelayOnSuccess bool
}

// TimingDelay pads login responses so unknown logins and wrong passwords take about the same time
type TimingDelay struct {
	config TimingConfig
	sleep  func(time.Duration)
}

func NewTimingDelay(config TimingConfig) *TimingDelay {
	return &TimingDelay{config: config, sleep: time.Sleep}
}

// cryptoRandIntn returns a secure random number in [0, max)
func cryptoRandIntn(max int64) (int64, error) {
	if max <= 0 {
		return 0, nil
	}

	randomBytes := make([]byte, 8)
	if _, err := rand.Read(randomBytes); err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(randomBytes) % uint64(max)), nil
}

func (td *TimingDelay) target() time.Duration {
	delay := td.config.BaseDelay
	if td.config.RandomDelay > 0 {
		if extra, err := cryptoRandIntn(int64(td.config.RandomDelay)); err == nil {
			delay += time.Duration(extra)
		}
	}
	return delay
}

// WaitFrom sleeps until at least base+random has elapsed since startTime
func (td *TimingDelay) WaitFrom(startTime time.Time, success bool) {
	if td == nil || (success && !td.config.DelayOnSuccess) {
		return
	}

	if remaining := td.target() - time.Since(startTime); remaining > 0 {
		td.sleep(remaining)
	}
}
