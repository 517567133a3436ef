package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	apiexport "github.com/jonnysatts/fortress-modeler-sub003/pkg/api/export"
	apiforecast "github.com/jonnysatts/fortress-modeler-sub003/pkg/api/forecast"
	"github.com/jonnysatts/fortress-modeler-sub003/pkg/core/store"
)

// ServerConfig is loaded from config/server.yaml when present.
type ServerConfig struct {
	Port int `yaml:"port"`
}

func main() {
	// Load environment variables
	godotenv.Load()

	cfg := ServerConfig{Port: 8080}
	if data, err := os.ReadFile("config/server.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			fmt.Printf("[WARNING] Failed to parse config/server.yaml: %v\n", err)
		}
	}

	// The store is optional: without DATABASE_URL the API still serves the
	// pure calculation endpoints, it just cannot load actuals by project.
	if os.Getenv("DATABASE_URL") != "" {
		if err := store.InitDB(context.Background()); err != nil {
			fmt.Printf("[WARNING] Database unavailable: %v\n", err)
		} else {
			defer store.Close()
			fmt.Println("[STORE] Connected")
		}
	}

	// Forecast endpoints
	http.HandleFunc("/api/forecast", apiforecast.HandleForecast)
	http.HandleFunc("/api/forecast/scenario", apiforecast.HandleScenario)
	http.HandleFunc("/api/forecast/analysis", apiforecast.HandleAnalysis)

	// Export endpoints
	http.HandleFunc("/api/export/forecast.csv", apiexport.HandleForecastCSV)
	http.HandleFunc("/api/export/trend.csv", apiexport.HandleTrendCSV)

	// Library endpoints (served 503 until DATABASE_URL is configured)
	http.HandleFunc("/api/models/save", apiforecast.HandleModelSave)
	http.HandleFunc("/api/models/get", apiforecast.HandleModelGet)
	http.HandleFunc("/api/models/list", apiforecast.HandleModelList)
	http.HandleFunc("/api/scenarios/save", apiforecast.HandleScenarioSave)
	http.HandleFunc("/api/scenarios/list", apiforecast.HandleScenarioList)
	http.HandleFunc("/api/scenarios/run", apiforecast.HandleScenarioRun)

	addr := fmt.Sprintf(":%d", cfg.Port)
	fmt.Printf("API server starting on %s...\n", addr)
	fmt.Println("  - POST /api/forecast")
	fmt.Println("  - POST /api/forecast/scenario")
	fmt.Println("  - POST /api/forecast/analysis")
	fmt.Println("  - POST /api/export/forecast.csv")
	fmt.Println("  - POST /api/export/trend.csv")
	fmt.Println("  - POST /api/models/{save,get,list}")
	fmt.Println("  - POST /api/scenarios/{save,list,run}")

	if err := http.ListenAndServe(addr, nil); err != nil {
		fmt.Printf("[FATAL] Server failed to start: %v\n", err)
		os.Exit(1)
	}
}
