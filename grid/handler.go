//go:build !js

package grid

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandel_hues"
)

// Handler serves grid computations over websocket connections.
// Each text message carries a JSON view, each reply is one binary raw iteration buffer.
type Handler struct {
	backend mandel.Backend
	// MaxPixels rejects views larger than this, zero means unlimited.
	MaxPixels int

	m       sync.Mutex
	workers int
}

// NewHandler serves grids computed by backend.
func NewHandler(backend mandel.Backend) *Handler {
	return &Handler{backend: backend}
}

// Workers returns the number of connected clients.
func (h *Handler) Workers() int {
	h.m.Lock()
	defer h.m.Unlock()
	return h.workers
}

func (h *Handler) incActiveWorker() {
	h.m.Lock()
	h.workers++
	w := h.workers
	h.m.Unlock()

	log.Printf("workers: %d", w)
}

func (h *Handler) decActiveWorkers() {
	h.m.Lock()
	h.workers--
	w := h.workers
	h.m.Unlock()

	log.Printf("workers: %d", w)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"}, // TODO: restrict once the web client has a fixed origin
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.CloseNow()

	h.incActiveWorker()
	defer h.decActiveWorkers()

	ctx := r.Context()
	for {
		var view mandel.ViewDefinition
		if err := wsjson.Read(ctx, c, &view); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				log.Printf("read view from %s: %v", r.RemoteAddr, err)
			}
			return
		}

		if err := view.Validate(); err != nil {
			c.Close(websocket.StatusPolicyViolation, closeReason(err))
			return
		}
		if h.MaxPixels > 0 && view.Width > h.MaxPixels/view.Height {
			c.Close(websocket.StatusPolicyViolation, fmt.Sprintf("view %dx%d exceeds %d pixels", view.Width, view.Height, h.MaxPixels))
			return
		}

		start := time.Now()
		g, err := h.backend.ComputeGrid(ctx, view)
		if err != nil {
			status := websocket.StatusInternalError
			if errors.Is(err, mandel.ErrComputation) {
				status = websocket.StatusPolicyViolation
			}
			c.Close(status, closeReason(err))
			return
		}
		buf, err := EncodeGrid(g)
		if err != nil {
			c.Close(websocket.StatusInternalError, closeReason(err))
			return
		}
		if err := c.Write(ctx, websocket.MessageBinary, buf); err != nil {
			log.Printf("write grid to %s: %v", r.RemoteAddr, err)
			return
		}
		log.Printf("computed %dx%d (max %d) for %s in %s", view.Width, view.Height, view.MaxIteration, r.RemoteAddr, time.Since(start))
	}
}

// closeReason fits err into a close frame, whose reason is limited to 123 bytes.
func closeReason(err error) string {
	s := err.Error()
	if len(s) > 123 {
		s = s[:123]
	}
	return s
}
