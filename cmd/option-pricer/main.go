package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/contactkeval/option-pricer/internal/analysis"
	"github.com/contactkeval/option-pricer/internal/data"
	"github.com/contactkeval/option-pricer/internal/rates"
	"github.com/contactkeval/option-pricer/internal/report"
)

func main() {
	configPath := flag.String("config", filepath.Join("..", "..", "configs", "chain.json"), "path to JSON config")
	rest := flag.Bool("rest", false, "run as REST server (accept analysis jobs)")
	port := flag.String("port", ":8080", "REST server listen address")
	flag.Parse()

	if os.Getenv("MASSIVE_API_KEY") == "" {
		_ = godotenv.Load()
	}

	cfgData, err := os.ReadFile(*configPath)
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}

	var cfg analysis.Config
	if err := json.Unmarshal(cfgData, &cfg); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	// choose quote provider
	var prov data.Provider
	apiKey := os.Getenv("MASSIVE_API_KEY")
	if apiKey != "" {
		prov = data.NewMassiveDataProvider(apiKey)
		log.Printf("[info] massive provider enabled")
	} else {
		prov = data.NewSyntheticProvider()
		log.Printf("[info] synthetic provider enabled")
	}

	// risk-free rate: config override wins, otherwise live Treasury Bills
	var rateProv rates.Provider
	if cfg.RiskFreeRate == nil {
		rateProv = rates.NewTreasuryClient()
	}

	engine := analysis.NewEngine(&cfg, prov, rateProv)

	if *rest {
		mux := http.NewServeMux()
		mux.HandleFunc("/run", func(w http.ResponseWriter, r *http.Request) {
			// quick endpoint to run the analysis once with the loaded config
			log.Printf("[info] received /run request")
			res, err := engine.Run()
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(res)
		})
		mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
		log.Printf("[info] starting REST server on %s", *port)
		log.Fatal(http.ListenAndServe(*port, mux))
		return
	}

	start := time.Now()
	res, err := engine.Run()
	if err != nil {
		log.Fatalf("analysis failed: %v", err)
	}
	if err := os.MkdirAll(cfg.ReportDir, 0755); err != nil {
		log.Printf("[warn] could not create output dir %s: %v", cfg.ReportDir, err)
	}
	if err := report.WriteJSON(res, cfg.ReportDir); err != nil {
		log.Printf("[warn] writing JSON report: %v", err)
	}
	if err := report.WriteCSV(res.Rows, cfg.ReportDir); err != nil {
		log.Printf("[warn] writing CSV report: %v", err)
	}
	log.Printf("[done] finished in %v, wrote %d rows to %s", time.Since(start), len(res.Rows), cfg.ReportDir)
}
