package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	batch "SoilShear/internal/calc/premium/batch"
	importer "SoilShear/internal/calc/premium/importer"
	report "SoilShear/internal/calc/report"
	shear "SoilShear/internal/calc/shear"
	config "SoilShear/internal/config"
	ratelimit "SoilShear/internal/ratelimit"
)

var wg sync.WaitGroup

func CORS(mux *mux.Router) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		mux.ServeHTTP(w, r)
	})
}

func HandleList(mux *mux.Router, cfg config.Config) error {
	models, err := cfg.Table()
	if err != nil {
		return fmt.Errorf("models: %w", err)
	}
	calc := shear.NewCalculator(models)
	calc.Stresses = cfg.Stresses()
	calc.Samples = cfg.Mohr.Samples
	plotter := &report.Plotter{FontPath: cfg.Render.FontPath, Title: cfg.Render.Title}

	limiter := ratelimit.NewIPRateLimiter(rate.Limit(cfg.Limit.Rate), cfg.Limit.Burst)

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")
	mux.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := mux.PathPrefix("/api").Subrouter()
	api.Use(limiter.LimitMiddleware)

	shearH := &shear.Handler{Calculator: calc}
	reportH := &report.Handler{Calculator: calc, Plotter: plotter}
	batchH := &batch.Handler{Calculator: calc}
	importH := &importer.Handler{Calculator: calc}

	api.HandleFunc("/tools/shear/options", shearH.Options).Methods("GET")
	api.HandleFunc("/tools/shear/calc", shearH.Calc).Methods("POST")
	api.HandleFunc("/tools/shear/plot", reportH.Plot).Methods("POST")
	api.HandleFunc("/tools/shear/batch", batchH.Shear).Methods("POST")
	api.HandleFunc("/tools/shear/import", importH.Shear).Methods("POST")
	api.HandleFunc("/tools/report/pdf", reportH.Generate).Methods("POST")
	return nil
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	mux := mux.NewRouter()
	if err := HandleList(mux, cfg); err != nil {
		log.Fatalf("routes: %v", err)
	}
	handler := CORS(mux)

	server := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: handler,
	}

	log.Printf("Starting server on %s (tls=%t)", cfg.Server.Addr, cfg.Server.TLS())
	wg.Add(1)
	go func() {
		defer wg.Done()
		var err error
		if cfg.Server.TLS() {
			err = server.ListenAndServeTLS(cfg.Server.CertFile, cfg.Server.KeyFile)
		} else {
			err = server.ListenAndServe()
		}
		if err != nil && err != http.ErrServerClosed {
			log.Printf("Server error: %v", err)
			cancel()
		}
	}()

	<-ctx.Done()
	log.Println("Shutdown signal received")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped")

	wg.Wait()
}
