// Package retag provides the orchestration logic that brings the tags of a
// music library in line with its file names.
//
// # Manager
//
// The Manager coordinates one run:
//
//  1. Scan the root directory for audio files
//  2. Open each file's tag, one file at a time
//  3. Detect fields that differ from the values implied by the path
//  4. Report the differences
//  5. Apply and save them, unless this is a test run
//  6. Generate per-directory playlists (optional)
//
// # Basic Usage
//
//	reporter := change.NewReporter(os.Stdout, true)
//	manager, err := retag.NewManager(settings, reporter, retag.WithLogger(log))
//	if err != nil {
//	    return err
//	}
//
//	summary, err := manager.Run(ctx)
//	reporter.Summary(summary, settings.DryRun)
//
// # Errors
//
// The first failure ends the run. Errors match ErrScan, ErrParse or ErrApply
// with errors.Is; per-file failures are *FileError values carrying the path.
//
// # Progress Tracking
//
// Progress is reported via a callback that receives ProgressEvent values,
// and GetProgress can be polled from another goroutine:
//
//	manager, _ := retag.NewManager(settings, reporter, retag.WithProgress(func(e retag.ProgressEvent) {
//	    fmt.Println(e.Message)
//	}))
package retag
