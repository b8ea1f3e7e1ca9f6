package scan

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/MrJamesThe3rd/till/internal/barcode"
)

// Event is one barcode detection reported by a scan backend.
type Event struct {
	RawCode   string
	Timestamp time.Time
	Format    barcode.Format
}

// Source is the capability every scan backend implements. Next blocks until
// a detection is available and returns io.EOF once the backend is stopped.
type Source interface {
	Next(ctx context.Context) (Event, error)
}

// Clock returns the current time.
type Clock func() time.Time

// LineSource reads one code per line, which is how USB and Bluetooth
// keyboard-wedge scanners deliver codes. Detections are timestamped on arrival.
//
// Reading happens on a background goroutine started by the first Next call;
// it exits when the reader is exhausted or the source is closed.
type LineSource struct {
	reader    io.Reader
	now       Clock
	once      sync.Once
	closeOnce sync.Once
	lines     chan string
	done      chan struct{}
	exited    chan struct{}
	err       error
}

func NewLineSource(r io.Reader, now Clock) *LineSource {
	if now == nil {
		now = time.Now
	}

	return &LineSource{
		reader: r,
		now:    now,
		lines:  make(chan string),
		done:   make(chan struct{}),
		exited: make(chan struct{}),
	}
}

func (s *LineSource) read() {
	defer close(s.exited)
	defer close(s.lines)

	sc := bufio.NewScanner(s.reader)
	for sc.Scan() {
		select {
		case s.lines <- sc.Text():
		case <-s.done:
			return
		}
	}

	s.err = sc.Err()
}

func (s *LineSource) Next(ctx context.Context) (Event, error) {
	s.once.Do(func() { go s.read() })

	for {
		select {
		case <-s.done:
			return Event{}, io.EOF
		default:
		}

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-s.done:
			return Event{}, io.EOF
		case line, ok := <-s.lines:
			if !ok {
				if s.err != nil {
					return Event{}, fmt.Errorf("reading scanner input: %w", s.err)
				}

				return Event{}, io.EOF
			}

			code := strings.TrimSpace(line)
			if code == "" {
				continue
			}

			return Event{RawCode: code, Timestamp: s.now(), Format: barcode.Detect(code)}, nil
		}
	}
}

// Close stops the source. A line the reader is holding is dropped and later
// Next calls return io.EOF. A Read already blocked on the underlying reader
// only returns once that reader yields or is closed by its owner.
func (s *LineSource) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// ChanSource adapts a channel of detections, e.g. from a camera decoder
// running elsewhere. Closing the channel stops the source.
type ChanSource struct {
	events <-chan Event
}

func NewChanSource(events <-chan Event) *ChanSource {
	return &ChanSource{events: events}
}

func (s *ChanSource) Next(ctx context.Context) (Event, error) {
	select {
	case <-ctx.Done():
		return Event{}, ctx.Err()
	case ev, ok := <-s.events:
		if !ok {
			return Event{}, io.EOF
		}

		if ev.Format == "" {
			ev.Format = barcode.Detect(ev.RawCode)
		}

		return ev, nil
	}
}
