package commands

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/raushankrgupta/shoe-price-tracker/api"
	"github.com/raushankrgupta/shoe-price-tracker/config"
	"github.com/raushankrgupta/shoe-price-tracker/scrapers"
	"github.com/raushankrgupta/shoe-price-tracker/utils"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves a read-only scrape preview over HTTP.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		handler, err := newPreviewHandler(cfg)
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/scrape", corsMiddleware(handler.ScrapeHandler))
		mux.HandleFunc("/healthz", corsMiddleware(handler.HealthzHandler))

		srv := &http.Server{
			Addr:    ":" + cfg.Port,
			Handler: utils.LatencyMiddleware(mux),
		}
		go func() {
			<-cmd.Context().Done()
			_ = srv.Close()
		}()

		fmt.Printf("Server starting on port %s...\n", cfg.Port)
		fmt.Printf("Usage: curl \"http://localhost:%s/scrape?source=<ccs|tactics>\"\n", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Server failed: %v\n", err)
			return err
		}
		return nil
	},
}

// newPreviewHandler builds the scrapers once so concurrent requests share a
// single renderer and its port pool.
func newPreviewHandler(cfg *config.Config) (*api.Handler, error) {
	all, err := scrapers.NewScrapers(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build scrapers: %w", err)
	}
	return api.NewHandler(func(target string) (scrapers.Scraper, error) {
		return scrapers.Find(all, target)
	}), nil
}

func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next(w, r)
	}
}
