package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/domscout/domscout/internal/browser"
	"github.com/domscout/domscout/internal/overlay"
	"github.com/domscout/domscout/internal/scan"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	output      string
	format      string
	screenshot  string
	width       int
	height      int
	profile     string
	showOverlay bool
	holdSecs    int
	withStats   bool
	verbose     bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "domscout <url>",
		Short: "Discover the interactive elements of a web page",
		Long: `domscout opens a page in a headless browser, finds everything an
automation agent could act on, and writes the result as structured records.
Each element gets a dense numeric id, an accessible name, screen geometry,
and interaction state.

Example:
  domscout "https://myapp.com" -o elements.json --screenshot page.png`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&output, "output", "o", "", "Write records to a file instead of stdout")
	rootCmd.Flags().StringVar(&format, "format", "json", "Output format: json, compact")
	rootCmd.Flags().StringVar(&screenshot, "screenshot", "", "Save an annotated screenshot to this path")
	rootCmd.Flags().BoolVar(&showOverlay, "overlay", false, "Draw numbered markers in the live page")
	rootCmd.Flags().IntVar(&holdSecs, "hold", 0, "Keep the browser open this many seconds after scanning")
	rootCmd.Flags().IntVar(&width, "width", 1280, "Viewport width")
	rootCmd.Flags().IntVar(&height, "height", 720, "Viewport height")
	rootCmd.Flags().StringVar(&profile, "profile", "", "Browser profile directory for authenticated sessions (close browser first)")
	rootCmd.Flags().BoolVar(&withStats, "stats", false, "Print page structure counts to stderr")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// pageReport is the JSON envelope around the record list
type pageReport struct {
	URL      string        `json:"url"`
	Title    string        `json:"title"`
	Elements []scan.Record `json:"elements"`
}

func run(cmd *cobra.Command, args []string) error {
	url := args[0]

	if format != "json" && format != "compact" {
		return fmt.Errorf("unknown format %q", format)
	}

	profileDir := profile
	if profileDir == "" {
		profileDir = os.Getenv("DOMSCOUT_PROFILE")
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logVerbose("Starting domscout")
	logVerbose("  URL: %s", url)
	logVerbose("  Format: %s", format)

	// Step 1: Open the page
	fmt.Printf("→ Opening %s... ", url)
	b, err := browser.Open(url, browser.Options{
		Width:      width,
		Height:     height,
		ProfileDir: profileDir,
		Logger:     logger,
	})
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("open failed: %w", err)
	}
	defer b.Close()
	fmt.Println("done")

	// Step 2: Capture and scan
	fmt.Printf("→ Scanning page... ")
	snap, err := b.Capture()
	if err != nil {
		fmt.Println("failed")
		return fmt.Errorf("capture failed: %w", err)
	}
	records := scan.New(scan.Config{}, logger).Discover(snap)
	fmt.Printf("done (found %d interactive elements)\n", len(records))

	// Step 3: Write records
	pageURL, title := b.Info()
	if err := writeRecords(records, pageURL, title); err != nil {
		return err
	}

	if withStats {
		st := scan.Summarize(snap, records)
		fmt.Fprintf(os.Stderr, "page stats: %d elements, %d links, %d iframes, %d scroll containers, %d interactive\n",
			st.TotalElements, st.Links, st.Iframes, st.ScrollContainers, st.Interactive)
	}

	// Step 4: Optional overlay in the live page
	if showOverlay {
		fmt.Printf("→ Rendering overlay... ")
		ov := overlay.New(overlay.NewPageSurface(b.Page()), logger)
		if err := ov.Render(records); err != nil {
			fmt.Println("failed")
			return fmt.Errorf("overlay failed: %w", err)
		}
		fmt.Printf("done (%d markers)\n", len(ov.Markers()))
	}

	// Step 5: Optional annotated screenshot
	if screenshot != "" {
		fmt.Printf("→ Capturing screenshot... ")
		img, err := b.Screenshot()
		if err != nil {
			fmt.Println("failed")
			return fmt.Errorf("screenshot failed: %w", err)
		}
		if !showOverlay {
			// Markers are not in the page, so draw them onto the image
			img = overlay.Annotate(img, overlay.BuildMarkers(records))
		}
		size, err := overlay.SavePNG(img, screenshot, 0)
		if err != nil {
			fmt.Println("failed")
			return fmt.Errorf("screenshot save failed: %w", err)
		}
		fmt.Println("done")
		fmt.Printf("✓ Saved screenshot to %s (%.1f KB)\n", screenshot, float64(size)/1024)
	}

	if holdSecs > 0 {
		fmt.Printf("→ Holding browser open for %ds...\n", holdSecs)
		time.Sleep(time.Duration(holdSecs) * time.Second)
	}

	return nil
}

// writeRecords encodes the record list and sends it to stdout or the output
// file
func writeRecords(records []scan.Record, pageURL, title string) error {
	if records == nil {
		records = []scan.Record{}
	}

	var data []byte
	switch format {
	case "compact":
		data = []byte(scan.Compact(records))
	default:
		report := pageReport{URL: pageURL, Title: title, Elements: records}
		var err error
		data, err = json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		data = append(data, '\n')
	}

	if output == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("✓ Saved %d records to %s (%.1f KB)\n", len(records), output, float64(len(data))/1024)
	return nil
}

// newLogger returns a development logger in verbose mode, a no-op otherwise
func newLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopmentConfig().Build()
}

func logVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
