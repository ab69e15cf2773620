package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/handiism/retagger/internal/change"
	"github.com/handiism/retagger/internal/config"
	"github.com/handiism/retagger/internal/logging"
	"github.com/handiism/retagger/internal/retag"
	"go.uber.org/zap"
)

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "retag - Normalize MP3 tags from file and folder names")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Usage:")
	fmt.Fprintln(out, "  retag [options] [root]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Scans root (default: current directory) for *.mp3 files and sets")
	fmt.Fprintln(out, "Title, Artist, Album and Track from names like:")
	fmt.Fprintln(out, "  <Album>/01 Artist ft. Other - Title.mp3")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "For interactive mode, use: retag-tui")
	fmt.Fprintln(out)
	flag.PrintDefaults()
}

func main() {
	// Command line flags
	var (
		testFlag     = flag.Bool("test", false, "Test run: report changes without writing them")
		helpFlag     = flag.Bool("help", false, "Show this help")
		configFlag   = flag.String("config", "", "Path to config file")
		verboseFlag  = flag.Bool("verbose", false, "Show debug output on stderr")
		noColorFlag  = flag.Bool("no-color", false, "Disable colored output")
		charsetFlag  = flag.String("charset", "", "Re-decode Latin-1 frames with this legacy charset (e.g. windows-1251)")
		playlistFlag = flag.Bool("playlist", false, "Create a playlist file in every album folder")
		formatFlag   = flag.String("playlist-format", "", "Playlist format: m3u, pls, wpl, zpl")
	)

	flag.Usage = usage
	flag.Parse()

	if *helpFlag {
		usage()
		return
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	if err := settings.ApplyEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading environment: %v\n", err)
		os.Exit(1)
	}

	// Apply flags
	if flag.NArg() > 0 {
		settings.Root = flag.Arg(0)
	}
	if *testFlag {
		settings.DryRun = true
	}
	if *verboseFlag {
		settings.Verbose = true
	}
	if *noColorFlag || os.Getenv("NO_COLOR") != "" {
		settings.NoColor = true
	}
	if *charsetFlag != "" {
		settings.LegacyCharset = *charsetFlag
	}
	if *playlistFlag {
		settings.CreatePlaylist = true
	}
	if *formatFlag != "" {
		settings.PlaylistFormat = *formatFlag
	}

	if err := settings.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error in settings: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(settings.Verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Handle interrupts
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nInterrupted, stopping after the current file...")
		cancel()
	}()

	reporter := change.NewReporter(os.Stdout, !settings.NoColor)
	manager, err := retag.NewManager(settings, reporter, retag.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	log.Debug("starting run",
		zap.String("root", settings.Root),
		zap.Bool("test", settings.DryRun),
		zap.Bool("playlist", settings.CreatePlaylist))

	summary, err := manager.Run(ctx)
	reporter.Summary(summary, settings.DryRun)

	if err != nil {
		log.Sync()
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "Run cancelled.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
