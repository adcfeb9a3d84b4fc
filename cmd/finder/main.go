// Command finder picks a region and locality interactively and lists the
// collection points registered there.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/JaimeStill/ecopoint/internal/geography"
	"github.com/JaimeStill/ecopoint/internal/selector"
	"github.com/JaimeStill/ecopoint/pkg/logging"
	"github.com/joho/godotenv"
)

const (
	EnvFinderAPI      = "FINDER_API_URL"
	EnvFinderLogLevel = "FINDER_LOG_LEVEL"
)

func main() {
	godotenv.Load()

	var (
		apiURL  = flag.String("api", envOr(EnvFinderAPI, "http://localhost:3333/api"), "Ecopoint API base URL")
		geoURL  = flag.String("geo", geography.DefaultBaseURL, "IBGE localities API base URL (with -direct)")
		direct  = flag.Bool("direct", false, "Read regions from IBGE instead of the API proxy")
		uf      = flag.String("uf", "", "Region code; prompts when empty")
		city    = flag.String("city", "", "Locality name; prompts when empty")
		timeout = flag.Duration("timeout", 10*time.Second, "HTTP request timeout")
	)
	flag.Parse()

	logCfg := logging.Config{Level: logging.LevelWarn}
	if err := logCfg.Finalize(&logging.Env{Level: EnvFinderLogLevel}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger := logging.NewWithWriter(os.Stderr, &logCfg)

	httpClient := &http.Client{Timeout: *timeout}

	var source geography.System
	if *direct {
		geoCfg := geography.Config{BaseURL: *geoURL, Timeout: timeout.String()}
		if err := geoCfg.Finalize(nil); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		source = geography.NewWithClient(&geoCfg, httpClient, logger)
	} else {
		source = geography.NewRemote(*apiURL, httpClient)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sel := selector.New(selector.FromGeography(source), logger)
	f := newFinder(sel, *apiURL, httpClient, os.Stdin, os.Stdout)

	err := f.run(ctx, *uf, *city)
	sel.Wait()
	if err != nil {
		fmt.Fprintln(os.Stderr, "finder:", err)
		os.Exit(1)
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
