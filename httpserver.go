package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gobwas/ws"
	"github.com/gobwas/ws/wsutil"
)

type HTTPHandler struct {
	Router   *Router
	Registry *Registry
}

func NewHTTPServer(router *Router, registry *Registry, auth *DiagnosticsJWT) http.Handler {
	httpHandler := HTTPHandler{router, registry}
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET"},
		AllowCredentials: false,
	}))
	r.Use(middleware.RealIP)
	r.Use(httprate.Limit(60, time.Minute, httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint)))
	r.Use(middleware.Heartbeat("/"))

	r.Get("/ws", httpHandler.websocket())
	r.Get("/rooms", httpHandler.listRooms(auth))
	return r
}

func (h HTTPHandler) websocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, _, _, err := ws.UpgradeHTTP(r, w)
		if err != nil {
			LogErrorWhileUpgradingHTTP(err)
			return
		}
		defer conn.Close()
		client := NewClient(conn)
		LogClientConnected(r.RemoteAddr, client.ID)
		go client.WritePump()
		for {
			data, err := wsutil.ReadClientText(conn)
			if err != nil {
				h.Router.HandleDisconnect(client)
				close(client.send)
				LogClientDisconnected(r.RemoteAddr, client.ID)
				return
			}
			msg, err := DecodeMessage(data)
			if err != nil {
				// unknown frames are skipped, never fatal
				continue
			}
			h.Router.HandleMessage(client, msg)
		}
	}
}

func (h HTTPHandler) listRooms(auth *DiagnosticsJWT) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !auth.Verify(token) {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(h.Registry.Snapshot())
	}
}
