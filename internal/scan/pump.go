package scan

import (
	"context"
	"errors"
	"io"
)

// Pump pulls detections from src until it is exhausted or ctx is cancelled,
// passing each one the debouncer accepts to fn. A nil debouncer passes every
// detection through. It returns nil when src reports io.EOF.
func Pump(ctx context.Context, src Source, d *Debouncer, fn func(Event)) error {
	for {
		ev, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		if d != nil && !d.Accept(ev.RawCode, ev.Timestamp) {
			continue
		}

		fn(ev)
	}
}
