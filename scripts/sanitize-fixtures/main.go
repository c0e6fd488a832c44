package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/grez-lucas/pagefactory/internal/testutil"
)

func main() {
	dir := flag.String("dir", filepath.Join("internal", "testutil", "testdata", "fixtures"), "Fixture directory")
	dryRun := flag.Bool("dry-run", false, "Show what would be changed without modifying files")
	flag.Parse()

	files, err := filepath.Glob(filepath.Join(*dir, "*.html"))
	if err != nil || len(files) == 0 {
		fmt.Printf("No HTML files found in %s\n", *dir)
		os.Exit(1)
	}

	fmt.Printf("Sanitizing fixtures in %s\n", *dir)
	if *dryRun {
		fmt.Println("    (DRY RUN - no files will be modified)")
	}
	fmt.Println()

	failed := false
	for _, file := range files {
		if err := sanitizeFile(file, *dryRun); err != nil {
			fmt.Printf("Error sanitizing %s: %v\n", file, err)
			failed = true
		}
	}

	fmt.Println()
	if *dryRun {
		fmt.Println("Run without -dry-run to apply changes")
	}
	if failed {
		os.Exit(1)
	}
}

func sanitizeFile(path string, dryRun bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	sanitized, redacted, err := testutil.SanitizeHTML(string(content))
	if err != nil {
		return err
	}

	filename := filepath.Base(path)
	if redacted == 0 {
		fmt.Printf("%s: no sensitive data found\n", filename)
		return nil
	}

	fmt.Printf("%s: %d value(s) redacted\n", filename, redacted)
	if dryRun {
		return nil
	}

	return os.WriteFile(path, []byte(sanitized), 0o644)
}
