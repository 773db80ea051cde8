package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/raster-tools-mcp/internal/config"
	"github.com/ironsheep/raster-tools-mcp/internal/server"
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
			fmt.Printf("raster-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			printHelp()
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	if cfg.Debug() {
		log.Printf("Raster MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
		log.Printf("Default layout: %+v, viewport %dx%d, history %d",
			cfg.Layout, cfg.Viewport.Width, cfg.Viewport.Height, cfg.HistoryCapacity)
	}

	if Version != "dev" {
		server.Version = Version
	}
	srv := server.New(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func printHelp() {
	fmt.Println("raster-tools-mcp - MCP server for raw raster viewing, editing and radial analysis")
	fmt.Println()
	fmt.Println("Usage: raster-tools-mcp [options]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from ./.env):")
	fmt.Println("  RASTER_MCP_LOG_LEVEL=debug      Enable debug logging")
	fmt.Println("  RASTER_MCP_HEADER_OFFSET=3072   Bytes before pixel data")
	fmt.Println("  RASTER_MCP_WIDTH=2082           Image width in pixels")
	fmt.Println("  RASTER_MCP_HEIGHT=2217          Image height in pixels")
	fmt.Println("  RASTER_MCP_PIXEL_STRIDE=4       Bytes per BGRA pixel group")
	fmt.Println("  RASTER_MCP_VIEWPORT=800x600     Initial viewport size")
	fmt.Println("  RASTER_MCP_HISTORY=16           Undo history capacity")
	fmt.Println()
	fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
	fmt.Println("Register it as a stdio server in your MCP client configuration.")
}
