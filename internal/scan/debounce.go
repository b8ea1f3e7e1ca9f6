// Package scan turns a continuous stream of barcode detections into discrete scans.
package scan

import "time"

// DefaultWindow is how long a repeated detection of the same code is ignored.
const DefaultWindow = 500 * time.Millisecond

// Debouncer suppresses repeated detections of one code arriving within a
// window, so a barcode held in front of the camera is added to the cart once.
// It is not safe for concurrent use.
type Debouncer struct {
	window   time.Duration
	lastCode string
	lastTime time.Time
	seen     bool
}

func NewDebouncer(window time.Duration) *Debouncer {
	if window <= 0 {
		window = DefaultWindow
	}

	return &Debouncer{window: window}
}

// Accept reports whether a detection of code at now should be processed.
// Suppressed detections do not extend the window.
func (d *Debouncer) Accept(code string, now time.Time) bool {
	if d.seen && code == d.lastCode && now.Sub(d.lastTime) < d.window {
		return false
	}

	d.lastCode = code
	d.lastTime = now
	d.seen = true

	return true
}

// Reset forgets the last detection. Call it whenever scanning starts.
func (d *Debouncer) Reset() {
	d.lastCode = ""
	d.lastTime = time.Time{}
	d.seen = false
}

func (d *Debouncer) Window() time.Duration {
	return d.window
}
