package server

import (
	_ "embed"
	"net/http"
)

//go:embed index.html
var indexHTML []byte

// Handler serves the viewer page at / and the websocket at /ws.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", h.serveIndex)
	mux.HandleFunc("/ws", h.serveWS)
	return mux
}

func (h *Hub) serveIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (h *Hub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	defer h.remove(conn)

	wmu, last := h.add(conn)
	h.log.Info("client connected", "remote", conn.RemoteAddr().String(), "clients", h.Clients())
	if last != nil {
		if err := write(conn, wmu, last); err != nil {
			return
		}
	}

	for {
		var in Inject
		if err := conn.ReadJSON(&in); err != nil {
			h.log.Info("client disconnected", "remote", conn.RemoteAddr().String(), "err", err)
			return
		}
		if !h.Inject(in) {
			h.log.Debug("injection dropped", "x", in.X, "y", in.Y)
		}
	}
}
