package battery

import (
	"context"
	"time"

	"github.com/bryanchriswhite/quebar/internal/repaint"
)

// DefaultInterval is how often the battery is sampled. Charge moves
// slowly; anything faster just burns wake-ups.
const DefaultInterval = 60 * time.Second

// Sampler polls a Source on a fixed interval and publishes formatted
// percentage strings. Runs forever on its own goroutine; cycles where the
// source has no reading are skipped silently.
type Sampler struct {
	source   Source
	interval time.Duration
	out      chan string
	flag     *repaint.Flag
}

// NewSampler creates a sampler. source may be nil (host without a battery);
// the sampler then never publishes. A non-positive interval falls back to
// DefaultInterval.
func NewSampler(source Source, interval time.Duration, flag *repaint.Flag) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Sampler{
		source:   source,
		interval: interval,
		out:      make(chan string, 4),
		flag:     flag,
	}
}

// Readings returns the channel of published percentage strings.
func (s *Sampler) Readings() <-chan string {
	return s.out
}

// Run samples until ctx is cancelled. The first sample is taken
// immediately so the display does not sit on the placeholder for a full
// interval after startup.
func (s *Sampler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sample()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sample()
		}
	}
}

func (s *Sampler) sample() {
	if s.source == nil {
		return
	}
	ratio, ok := s.source.Ratio()
	if !ok {
		return
	}

	// Fire-and-forget publish: if the consumer is behind, evict the stale
	// reading so the newest one always lands.
	reading := FormatRatio(ratio)
	select {
	case s.out <- reading:
	default:
		select {
		case <-s.out:
		default:
		}
		select {
		case s.out <- reading:
		default:
		}
	}
	s.flag.Raise()
}
