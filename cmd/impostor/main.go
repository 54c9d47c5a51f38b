package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/impostor-party/impostor/internal/app"
	"github.com/impostor-party/impostor/internal/browser"
	"github.com/impostor-party/impostor/internal/logger"
	"github.com/impostor-party/impostor/web"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var version = "dev"

// showBanner prints the startup logo
func showBanner() {
	width := 62
	border := ""
	for i := 0; i < width; i++ {
		border += "═"
	}

	logo := []string{
		`      ___                           _             _       `,
		`     |_ _|_ __ ___  _ __   ___  ___| |_ ___  _ __| |      `,
		`      | || '_ ` + "`" + ` _ \| '_ \ / _ \/ __| __/ _ \| '__| |      `,
		`      | || | | | | | |_) | (_) \__ \ || (_) | |  |_|      `,
		`     |___|_| |_| |_| .__/ \___/|___/\__\___/|_|  (_)      `,
		`                   |_|                                    `,
	}

	fmt.Printf("\n  %s╔%s╗%s\n", cyan, border, reset)
	for _, line := range logo {
		for len(line) < width {
			line += " "
		}
		fmt.Printf("  %s║%s%s%s║%s\n", cyan, yellow, line, cyan, reset)
	}
	fmt.Printf("  %s╚%s╝%s\n\n", cyan, border, reset)
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(appLog *logger.SlogLogger) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Printf("%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp() {
	fmt.Printf("\n%s%s  Keyboard Shortcuts:%s\n", bold, green, reset)
	fmt.Printf("    %so%s      - Open the game screen in browser\n", cyan, reset)
	fmt.Printf("    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Printf("    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Printf("    %sq%s      - Quit server\n", cyan, reset)
	fmt.Printf("    %s?%s      - Show this help\n\n", cyan, reset)
}

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "impostor.db", "SQLite database path")
	logLevel := flag.String("loglevel", "info", "Log level (debug, info, warn, error)")
	noOpen := flag.Bool("noopen", false, "Don't open the game screen in the browser on startup")
	noKeyboard := flag.Bool("nokeyboard", false, "Disable keyboard shortcuts")
	showVersion := flag.Bool("version", false, "Show version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Impostor! - Social Deduction Party Game

Usage:
  impostor [options]

Options:
  -port int      HTTP server port (default 8080)
  -db string     SQLite database path (default "impostor.db")
  -loglevel str  Log level: debug, info, warn, error (default "info")
  -noopen        Don't open the game screen on startup
  -nokeyboard    Disable keyboard shortcuts
  -version       Show version and exit
  -help          Show this help message

Keyboard Shortcuts (when enabled):
  o              Open the game screen in browser
  h              Toggle HTTP request logging
  l              Cycle log level (debug → info → warn → error)
  q              Quit server
  ?              Show keyboard help

Examples:
  impostor                           # Run on port 8080 with impostor.db
  impostor -port 9000                # Run on port 9000
  impostor -db /data/party.db        # Use custom database path
  impostor -noopen -nokeyboard       # Headless mode

`)
	}

	flag.Parse()

	if *showVersion {
		fmt.Printf("impostor %s\n", version)
		os.Exit(0)
	}

	showBanner()

	appLog := logger.NewWithLevel(logger.ParseLevel(*logLevel))

	a, err := app.New(appLog, *dbPath, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		log.Fatal("Failed to initialize application:", err)
	}

	addr := fmt.Sprintf(":%d", *port)

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Run(addr)
	}()

	// Wait a moment for server to start
	time.Sleep(100 * time.Millisecond)

	gameURL := fmt.Sprintf("http://localhost:%d/", *port)

	if !*noOpen {
		if err := browser.Open(gameURL); err != nil {
			appLog.Warn("Failed to open browser", "error", err)
		}
	}

	if !*noKeyboard {
		printKeyboardHelp()
		go listenForKeyboard(gameURL, appLog)
	} else {
		fmt.Printf("\n%sKeyboard shortcuts disabled%s\n\n", yellow, reset)
	}

	if err := <-serverErr; err != nil {
		log.Fatal(err)
	}
}
