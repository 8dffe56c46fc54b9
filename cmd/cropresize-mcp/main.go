package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/cropresize-mcp/internal/config"
	"github.com/ironsheep/cropresize-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("cropresize-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("cropresize-mcp - MCP server that resizes and centre-crops RGBA pixel buffers")
			fmt.Println()
			fmt.Println("Usage: cropresize-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  CROPRESIZE_LOG_LEVEL=debug           Log level (debug, info, warn, error)")
			fmt.Println("  CROPRESIZE_RESAMPLER=imaging         Resize backend (imaging, bild, xdraw)")
			fmt.Println("  CROPRESIZE_FILTER=linear             Filter (nearest, box, linear, catmullrom, lanczos)")
			fmt.Println("  CROPRESIZE_SCALING=strict            strict fails on aspect mismatch, cover crops the excess")
			fmt.Println("  CROPRESIZE_MAX_PIXELS=50000000       Largest accepted image, in pixels")
			fmt.Println("  CROPRESIZE_MAX_REQUEST_BYTES=268435456  Longest accepted request line")
			fmt.Println("  CROPRESIZE_IMAGE_DIR=/images         Default directory for image_list")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Logs go to stderr; stdout is for MCP protocol
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.SetLevel(cfg.LogLevel)

	log.WithFields(logrus.Fields{
		"version":   Version,
		"built":     BuildTime,
		"commit":    GitCommit,
		"resampler": cfg.Resampler.String(),
		"scaling":   cfg.Scaling.String(),
	}).Debug("cropresize-mcp starting")

	srv := server.New(cfg, log)
	srv.Version = Version
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
