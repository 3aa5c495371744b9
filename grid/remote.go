package grid

import (
	"context"
	"fmt"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel_hues"
)

// RemoteBackend computes grids on a compute server reached over a websocket.
// Every call dials its own connection, so one RemoteBackend can serve concurrent computes.
type RemoteBackend struct {
	// URL of the server's websocket endpoint, e.g. ws://localhost:8080/ws
	URL string
	// DialTimeout bounds connection setup, zero means no extra bound.
	DialTimeout time.Duration
}

var _ mandel.Backend = (*RemoteBackend)(nil)

// ComputeGrid implements mandel.Backend.
func (b *RemoteBackend) ComputeGrid(ctx context.Context, view mandel.ViewDefinition) (*mandel.Grid, error) {
	if err := view.Validate(); err != nil {
		return nil, err
	}

	dialCtx := ctx
	if b.DialTimeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, b.DialTimeout)
		defer cancel()
	}
	c, _, err := websocket.Dial(dialCtx, b.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("websocket.Dial %s: %w", b.URL, err)
	}
	defer c.CloseNow()

	c.SetReadLimit(int64(wireSize(view.Width*view.Height, !view.FastCalc)))

	if err := wsjson.Write(ctx, c, view); err != nil {
		return nil, fmt.Errorf("send view: %w", err)
	}
	typ, data, err := c.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("read grid: %w", err)
	}
	if typ != websocket.MessageBinary {
		return nil, fmt.Errorf("read grid: unexpected %s message", typ)
	}

	g, err := DecodeGrid(data)
	if err != nil {
		return nil, err
	}
	c.Close(websocket.StatusNormalClosure, "")
	return g, nil
}
