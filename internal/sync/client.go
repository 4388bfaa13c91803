package sync

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/rs/zerolog/log"
)

// Listen connects to a TCP sync server and calls fn with every line it
// sends until the connection drops or ctx is done.
func Listen(ctx context.Context, addr string, fn func(line []byte)) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { _ = conn.Close() })
	defer stop()

	log.Info().Str("component", "sync-client").Str("addr", addr).Msg("connected")

	sc := bufio.NewScanner(conn)
	for sc.Scan() {
		fn(sc.Bytes())
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err := sc.Err(); err != nil {
		return err
	}
	return net.ErrClosed
}

// Follow is Listen with reconnects every retry until ctx is done.
func Follow(ctx context.Context, addr string, retry time.Duration, fn func(line []byte)) error {
	if retry <= 0 {
		retry = time.Second
	}
	for {
		err := Listen(ctx, addr, fn)
		if ctx.Err() != nil {
			return nil
		}
		log.Warn().Err(err).Str("component", "sync-client").Str("addr", addr).Msg("disconnected")

		t := time.NewTimer(retry)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil
		case <-t.C:
		}
	}
}

// Pretty indents a JSON line; anything else is returned as is.
func Pretty(line []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(line, &obj); err != nil {
		return string(line)
	}
	b, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return string(line)
	}
	return string(b)
}
