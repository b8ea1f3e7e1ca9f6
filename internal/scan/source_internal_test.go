package scan

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineSource_CloseReleasesReader(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	src := NewLineSource(pr, nil)

	go func() { _, _ = pw.Write([]byte("4912345678904\n")) }()

	ev, err := src.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "4912345678904", ev.RawCode)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = src.Next(ctx)
	require.ErrorIs(t, err, context.Canceled)

	written := make(chan struct{})
	go func() {
		_, _ = pw.Write([]byte("96385074\n"))
		close(written)
	}()

	// The reader goroutine now holds a line nobody will receive.
	select {
	case <-written:
	case <-time.After(time.Second):
		t.Fatal("reader did not consume the pending line")
	}

	require.NoError(t, src.Close())

	select {
	case <-src.exited:
	case <-time.After(time.Second):
		t.Fatal("reader goroutine still running after Close")
	}

	_, err = src.Next(context.Background())
	assert.ErrorIs(t, err, io.EOF)
}
