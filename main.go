package main

import (
	"net/http"

	"github.com/jonboulle/clockwork"
)

func main() {
	config := MustLoadConfig()
	registry := NewRegistry(clockwork.NewRealClock())
	router := NewRouter(registry)
	auth := NewDiagnosticsJWT(config.AdminSecret)
	if token, err := auth.GenerateToken(); err == nil {
		LogDiagnosticsToken(token)
	}
	handler := NewHTTPServer(router, registry, auth)
	LogStartedServer(config.Port)
	http.ListenAndServe(":"+config.Port, handler)
}
