package config

import (
	"flag"
	"os"

	"github.com/kaustubh-tripathi-1/bytetogether-sub001/internal/flagx"
)

// parseFlags overlays selected Config fields from command-line flags.
//
// Supported flags:
//
//	-e string   backend endpoint URL (overrides BYTETOGETHER_ENDPOINT)
//	-d string   local database path (overrides BYTETOGETHER_LOCAL_DB)
//
// os.Args is filtered to only the flags handled here, so other components
// can define their own without interference.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-e", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.EndpointURL, "e", cfg.EndpointURL, "backend endpoint URL")
	fs.StringVar(&cfg.LocalDBPath, "d", cfg.LocalDBPath, "local database path")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
