// discover-elements opens a page and prints its frame tree together with
// the controls found in every frame. The report is the raw material for a
// page model: each line names a candidate title and the selector to bind.
//
// Usage:
//
//	go run ./scripts/discover-elements -url=https://example.test/login
//
// The script opens a visible browser. Navigate to each page you want to
// model and press ENTER to print its report.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/grez-lucas/pagefactory/internal/browser"
	"github.com/grez-lucas/pagefactory/internal/config"
)

// controls is what a page model usually binds.
const controls = "a, button, input, select, textarea, table, img, [role=\"button\"]"

func main() {
	startURL := flag.String("url", "", "Page to open first")
	flag.Parse()

	if *startURL == "" {
		fmt.Println("Usage: go run ./scripts/discover-elements -url=https://example.test/login")
		os.Exit(1)
	}

	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	session, err := browser.Launch(browser.LaunchOptions{
		Bin:      cfg.ChromeBin,
		Headless: false,
		Stealth:  true,
	})
	if err != nil {
		fmt.Printf("Error launching browser: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	page := session.Page
	if err := page.Navigate(*startURL); err != nil {
		fmt.Printf("Error opening %s: %v\n", *startURL, err)
		os.Exit(1)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		fmt.Print("Press ENTER to inspect the current page (or 'quit'): ")

		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) == "quit" {
			break
		}

		if err := browser.WaitForIFrames(page); err != nil {
			fmt.Printf("  (page did not settle: %v)\n", err)
		}
		time.Sleep(500 * time.Millisecond)

		info, err := page.Info()
		if err == nil {
			fmt.Printf("\nURL: %s\n\n", info.URL)
		}

		inspectFrame(page, "main", 1, cfg.Typing)

		deepest, err := browser.NewRodDocument(page, cfg.Typing).DeepestFrame()
		if err == nil && deepest.Page() != page {
			if info, err := deepest.Page().Info(); err == nil {
				fmt.Printf("\nDeepest visible frame: %s\n", info.URL)
			}
		}
		fmt.Println()
	}
}

// inspectFrame prints the controls of page and recurses into its iframes.
func inspectFrame(page *rod.Page, path string, depth int, typing browser.TypingMode) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indent := strings.Repeat("  ", depth)
	doc := browser.NewRodDocument(page, typing)

	els, err := doc.FindAll(ctx, controls)
	if err != nil {
		fmt.Printf("%s(cannot list controls: %v)\n", indent, err)
	}
	if len(els) == 0 {
		fmt.Printf("%s(no controls)\n", indent)
	}
	for _, el := range els {
		fmt.Printf("%s%s\n", indent, describe(ctx, el))
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		return
	}

	for i, iframe := range iframes {
		label := fmt.Sprintf("iframe[%d]", i)
		if id, _ := iframe.Attribute("id"); id != nil && *id != "" {
			label = "iframe#" + *id
		} else if name, _ := iframe.Attribute("name"); name != nil && *name != "" {
			label = fmt.Sprintf("iframe[name=%s]", *name)
		}

		childPath := path + " > " + label
		visible, _ := iframe.Visible()
		fmt.Printf("\n%sIFRAME %s  visible=%v\n", indent, childPath, visible)

		frame, err := iframe.Frame()
		if err != nil {
			fmt.Printf("%s  (cannot access frame: %v)\n", indent, err)
			continue
		}

		inspectFrame(frame, childPath, depth+1, typing)
	}
}

// describe renders one control as "tag selector  'text'  visible=...".
func describe(ctx context.Context, el browser.Element) string {
	tag, _ := el.TagName(ctx)

	selector := tag
	if id, _ := el.Attribute(ctx, "id"); id != "" {
		selector = tag + "#" + id
	} else if name, _ := el.Attribute(ctx, "name"); name != "" {
		selector = fmt.Sprintf("%s[name=%q]", tag, name)
	}

	text, _ := el.Text(ctx)
	if text == "" {
		text, _ = el.Attribute(ctx, "value")
	}
	if text == "" {
		text, _ = el.Attribute(ctx, "placeholder")
	}

	visible, _ := el.Visible(ctx)
	return fmt.Sprintf("%-40s  %-30q  visible=%v", selector, truncate(strings.TrimSpace(text), 30), visible)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
