// Package server streams a live fluid to websocket clients and accepts
// remote injections.
//
// One goroutine, the one calling [Hub.Run], owns the fluid. Client
// connections never touch it; their injections are queued and applied at
// the start of the next tick.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/san-kum/stablefluid/internal/fluid"
	"github.com/san-kum/stablefluid/internal/sim"
)

const (
	defaultQueue = 256
	writeTimeout = time.Second
)

// Inject is a client request to add density and velocity at one cell.
type Inject struct {
	X       int     `json:"x"`
	Y       int     `json:"y"`
	Density float64 `json:"density"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
}

type FrameMessage struct {
	Type    string    `json:"type"`
	Tick    int       `json:"tick"`
	W       int       `json:"w"`
	H       int       `json:"h"`
	Density []float64 `json:"density"`
}

type Options struct {
	Dt  float64
	FPS int
	// Sources run before each step, after queued injections.
	Sources []sim.Source
	// QueueSize bounds pending injections. Extra ones are dropped.
	QueueSize int
	Logger    *slog.Logger
}

type Hub struct {
	fluid   *fluid.Fluid
	opts    Options
	injects chan Inject
	log     *slog.Logger

	tick    int
	density []float64

	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[*websocket.Conn]*sync.Mutex
	last    []byte
}

func NewHub(f *fluid.Fluid, opts Options) (*Hub, error) {
	if !(opts.Dt > 0) || math.IsInf(opts.Dt, 0) {
		return nil, fmt.Errorf("dt must be positive, got %f", opts.Dt)
	}
	if opts.FPS <= 0 {
		return nil, fmt.Errorf("fps must be positive, got %d", opts.FPS)
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = defaultQueue
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Hub{
		fluid:   f,
		opts:    opts,
		injects: make(chan Inject, opts.QueueSize),
		log:     opts.Logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}, nil
}

// Inject queues in for the next tick. It reports false when the cell is
// outside the grid, a value is not finite, or the queue is full.
func (h *Hub) Inject(in Inject) bool {
	if in.X < 0 || in.X >= h.fluid.Width() || in.Y < 0 || in.Y >= h.fluid.Height() {
		return false
	}
	for _, v := range []float64{in.Density, in.DX, in.DY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	select {
	case h.injects <- in:
		return true
	default:
		return false
	}
}

// Run ticks the fluid at the configured rate until ctx is done.
func (h *Hub) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(h.opts.FPS))
	defer ticker.Stop()
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			msg := h.advance()
			data, err := json.Marshal(msg)
			if err != nil {
				return fmt.Errorf("encoding frame %d: %w", msg.Tick, err)
			}
			h.broadcast(data)
		}
	}
}

// advance applies pending injections and sources, steps once and returns
// the new frame. Only the Run goroutine calls it.
func (h *Hub) advance() FrameMessage {
	h.drain()
	for _, s := range h.opts.Sources {
		s.Apply(h.fluid, h.tick)
	}
	h.fluid.Step(h.opts.Dt)
	h.tick++

	if !h.fluid.Valid() {
		h.log.Warn("non-finite state, resetting", "tick", h.tick)
		h.fluid.Reset()
	}

	h.density = h.fluid.DensityValues(h.density)
	return FrameMessage{
		Type:    "frame",
		Tick:    h.tick,
		W:       h.fluid.Width(),
		H:       h.fluid.Height(),
		Density: h.density,
	}
}

func (h *Hub) drain() {
	for {
		select {
		case in := <-h.injects:
			if in.Density != 0 {
				h.fluid.AddDensity(in.X, in.Y, in.Density)
			}
			if in.DX != 0 || in.DY != 0 {
				h.fluid.AddVelocity(in.X, in.Y, in.DX, in.DY)
			}
		default:
			return
		}
	}
}

func (h *Hub) broadcast(data []byte) {
	h.mu.Lock()
	h.last = data
	h.mu.Unlock()

	h.mu.RLock()
	var failed []*websocket.Conn
	for conn, wmu := range h.clients {
		if err := write(conn, wmu, data); err != nil {
			h.log.Debug("websocket write failed", "remote", conn.RemoteAddr().String(), "err", err)
			failed = append(failed, conn)
		}
	}
	h.mu.RUnlock()

	for _, conn := range failed {
		h.remove(conn)
	}
}

func write(conn *websocket.Conn, wmu *sync.Mutex, data []byte) error {
	wmu.Lock()
	defer wmu.Unlock()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

func (h *Hub) add(conn *websocket.Conn) (*sync.Mutex, []byte) {
	wmu := &sync.Mutex{}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[conn] = wmu
	return wmu, h.last
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[conn]
	delete(h.clients, conn)
	h.mu.Unlock()
	if ok {
		conn.Close()
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
		delete(h.clients, conn)
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
