package main

import (
	"context"
	"crypto/subtle"
	"log"
	"net"
	"net/http"
	"time"

	"jobboard-engine/internal/httpapi"
)

func mask(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 10 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func isLoopback(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// shutdownHandler stops srv on request from a loopback client holding token.
func shutdownHandler(token *string, srv *http.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !isLoopback(r.RemoteAddr) {
			httpapi.WriteError(w, r, http.StatusForbidden, "forbidden", "shutdown is only accepted from loopback")
			return
		}
		got := r.Header.Get("X-Shutdown-Token")
		if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(*token)) != 1 {
			httpapi.WriteError(w, r, http.StatusUnauthorized, "unauthorized", "invalid shutdown token")
			return
		}

		log.Printf("level=info msg=\"shutdown requested\" request_id=%s", httpapi.RequestIDFrom(r.Context()))
		httpapi.WriteJSON(w, http.StatusAccepted, map[string]any{"message": "shutting down"})

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				log.Printf("level=error msg=\"shutdown failed\" err=%q", err.Error())
			}
		}()
	}
}
