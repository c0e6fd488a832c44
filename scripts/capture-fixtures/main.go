package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/config"
	"github.com/grez-lucas/pagefactory/internal/logging"
	"github.com/grez-lucas/pagefactory/internal/testutil"
)

func main() {
	startURL := flag.String("url", "", "Page to open first")
	pages := flag.String("pages", "login,home", "Comma-separated fixture names, captured in order")
	outputDir := flag.String("output", filepath.Join("internal", "testutil", "testdata", "fixtures"), "Output directory")
	flag.Parse()

	if *startURL == "" {
		fmt.Println("Usage: go run ./scripts/capture-fixtures -url=https://example.test/login -pages=login,home")
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		logger.Error("failed to create output directory", "dir", *outputDir, "error", err)
		os.Exit(1)
	}

	session, err := browser.Launch(browser.LaunchOptions{
		Bin:      cfg.ChromeBin,
		Headless: false,
		Stealth:  true,
	})
	if err != nil {
		logger.Error("failed to launch browser", "error", err)
		os.Exit(1)
	}
	defer session.Close()

	page := session.Page
	if err := page.Navigate(*startURL); err != nil {
		logger.Error("failed to open start page", "url", *startURL, "error", err)
		os.Exit(1)
	}

	fmt.Println("A browser window has opened.")
	fmt.Println("Bring the page into the described state, then press ENTER.")
	fmt.Println("Type 'skip' to skip a page, 'quit' to exit.")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	for _, name := range strings.Split(*pages, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		fmt.Printf("Capturing %s.html: open the %s page and press ENTER (or 'skip'/'quit'): ", name, name)

		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(strings.ToLower(input))

		if input == "quit" {
			break
		}
		if input == "skip" {
			logger.Info("skipped fixture", "name", name)
			continue
		}

		if err := capture(page, name, *outputDir, logger); err != nil {
			logger.Error("failed to capture fixture", "name", name, "error", err)
		}
	}
}

// capture writes name.png and a flattened, sanitized name.html.
func capture(page *rod.Page, name, outDir string, logger *slog.Logger) error {
	if err := browser.WaitForIFrames(page); err != nil {
		logger.Warn("page did not settle", "name", name, "error", err)
	}
	time.Sleep(time.Second)

	// The screenshot is taken before flattening rewrites the DOM.
	screenshotPath := filepath.Join(outDir, name+".png")
	if buf, err := page.Screenshot(false, nil); err != nil {
		logger.Warn("screenshot failed", "name", name, "error", err)
	} else if err := os.WriteFile(screenshotPath, buf, 0o644); err != nil {
		logger.Warn("failed to save screenshot", "path", screenshotPath, "error", err)
	}

	snap, err := browser.FlattenShadowDOM(page)
	if err != nil {
		return fmt.Errorf("flatten page: %w", err)
	}

	html, redacted, err := testutil.SanitizeHTML(snap.HTML)
	if err != nil {
		return fmt.Errorf("sanitize page: %w", err)
	}

	htmlPath := filepath.Join(outDir, name+".html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}

	logger.Info("saved fixture",
		"path", htmlPath,
		"shadow_roots", snap.ShadowCount,
		"iframes", snap.IframeCount,
		"redacted", redacted,
	)
	return nil
}
