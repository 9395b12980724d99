package rest

import (
	"net/http"

	"diskmon/internal/config"
	"diskmon/internal/transport/rest/middleware"
	"diskmon/internal/transport/websocket"
)

type RouterDeps struct {
	WS    *websocket.Handler
	Usage *UsageHandler
	Alert *AlertHandler
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.CORS(cfg))

	// HEALTH
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// WEBSOCKET
	mux.HandleFunc("GET /ws", deps.WS.Serve)

	// DISK USAGE
	mux.HandleFunc("GET /api/current", deps.Usage.Current)
	mux.HandleFunc("GET /api/history/{mountpoint...}", deps.Usage.History)

	// ALERTS
	mux.HandleFunc("GET /api/alerts", deps.Alert.Index)
	mux.HandleFunc("POST /api/alerts/{id}/acknowledge", deps.Alert.Acknowledge)

	return globalMw.Apply(mux)
}
