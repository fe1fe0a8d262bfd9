package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Lokesh-1511/chain-reaction/internal/config"
	"github.com/Lokesh-1511/chain-reaction/internal/handler"
	"github.com/Lokesh-1511/chain-reaction/internal/hub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gameHub := hub.NewHub(cfg.MaxGames)

	wsHandler := &handler.WebSocketHandler{Hub: gameHub}
	api := &handler.API{Hub: gameHub}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", rateLimitMiddleware(cfg.RateLimit, wsHandler.Handle))
	api.Register(mux)

	server := &http.Server{
		Addr:         cfg.Addr,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		Handler:      loggingMiddleware(mux),
	}

	// Background sweep for expired and abandoned games.
	stopMaintain := make(chan struct{})
	go gameHub.Maintain(cfg.MaintainInterval, cfg.GameTTL, stopMaintain)

	shutdown := make(chan struct{})
	go handleSignals(server, stopMaintain, shutdown)

	log.Printf("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed: %v", err)
	}

	<-shutdown
	log.Println("Server stopped gracefully")
}

func handleSignals(server *http.Server, stopMaintain, shutdown chan struct{}) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	<-sig
	log.Println("Received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	close(stopMaintain)
	close(shutdown)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func rateLimitMiddleware(requestsPerMinute int, next http.HandlerFunc) http.HandlerFunc {
	limiter := newRateLimiter(requestsPerMinute, time.Minute)
	return func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(r.RemoteAddr) {
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	}
}

type rateLimiter struct {
	requests int
	mu       sync.Mutex
	counters map[string]int
}

func newRateLimiter(requests int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		requests: requests,
		counters: make(map[string]int),
	}
	go rl.resetCounters(interval)
	return rl
}

func (rl *rateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.counters[ip] >= rl.requests {
		return false
	}
	rl.counters[ip]++
	return true
}

func (rl *rateLimiter) resetCounters(interval time.Duration) {
	for range time.Tick(interval) {
		rl.mu.Lock()
		rl.counters = make(map[string]int)
		rl.mu.Unlock()
	}
}
