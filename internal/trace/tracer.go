package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives search events. Implementations must be goroutine-safe: the
// batch driver solves fixtures in parallel against one shared tracer.
type Tracer interface {
	Emit(ev Event)

	// Flush writes out anything buffered; Close flushes and releases the
	// underlying sink.
	Flush() error
	Close() error

	Level() Level
	Enabled() bool
}

// StorageMode picks where emitted events end up.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // write each event as it happens
	ModeRing                          // keep only the newest events in memory
	ModeBoth                          // stream and ring together
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	}
	return "unknown"
}

// ParseMode maps a flag value to a StorageMode.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	}
	return ModeRing, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
}

// Config bundles everything New needs to assemble a tracer.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto derives it from OutputPath
	Output     io.Writer // wins over OutputPath when set
	OutputPath string    // "-" or empty means stderr
	RingSize   int       // ring capacity, defaulted when <= 0
}

// New assembles a tracer from the config. LevelOff short-circuits to the nop
// tracer regardless of mode.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	if cfg.RingSize <= 0 {
		cfg.RingSize = 4096
	}

	format := cfg.Format
	if format == FormatAuto {
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") {
			format = FormatNDJSON
		} else {
			format = FormatText
		}
	}

	if cfg.Mode == ModeRing {
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	}

	w := cfg.Output
	if w == nil {
		var err error
		if w, err = openTraceFile(cfg.OutputPath); err != nil {
			return nil, err
		}
	}
	stream := NewStreamTracer(w, cfg.Level, format)

	switch cfg.Mode {
	case ModeStream:
		return stream, nil
	case ModeBoth:
		return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
	}
	return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
}

func openTraceFile(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}
