package retag

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/handiism/retagger/internal/audio"
	"github.com/handiism/retagger/internal/change"
	"github.com/handiism/retagger/internal/config"
	ioutils "github.com/handiism/retagger/internal/io"
	"github.com/handiism/retagger/internal/matcher"
	"github.com/handiism/retagger/internal/model"
	"github.com/handiism/retagger/internal/property"
	"github.com/handiism/retagger/internal/scan"
	"go.uber.org/zap"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update of a run.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Tag is an open, writable file tag.
type Tag interface {
	change.TagHandle
	Save() error
	Close() error
}

// OpenFunc opens the tag of the file at path.
type OpenFunc func(path string) (Tag, error)

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

// WithProgress sets the progress callback.
func WithProgress(onProgress func(ProgressEvent)) Option {
	return func(m *Manager) { m.onProgress = onProgress }
}

// WithOpener replaces the ID3v2 tag store.
func WithOpener(open OpenFunc) Option {
	return func(m *Manager) { m.open = open }
}

// Manager normalizes the tags of all files below the configured root.
type Manager struct {
	settings *config.Settings
	reporter *change.Reporter
	playlist *audio.PlaylistCreator
	props    []property.Descriptor
	open     OpenFunc
	log      *zap.Logger

	totalFiles     int32
	processedFiles int32

	onProgress func(ProgressEvent)
}

// NewManager creates a Manager that prints changes with reporter.
//
// It fails when the settings name an unknown legacy charset.
func NewManager(settings *config.Settings, reporter *change.Reporter, opts ...Option) (*Manager, error) {
	m := &Manager{
		settings: settings,
		reporter: reporter,
		playlist: audio.NewPlaylistCreator(settings.ToPlaylistFormat(), settings.M3UExtended),
		props:    property.Set(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.open == nil {
		store, err := audio.NewStore(audio.StoreOptions{LegacyCharset: settings.LegacyCharset})
		if err != nil {
			return nil, err
		}
		m.open = func(path string) (Tag, error) {
			tag, err := store.Open(path)
			if err != nil {
				return nil, err
			}
			return tag, nil
		}
	}

	return m, nil
}

// committer persists the changes of one file and reports whether it wrote.
type committer func(tag Tag, changes []change.Change) (bool, error)

func writeChanges(tag Tag, changes []change.Change) (bool, error) {
	change.ApplyAll(changes, tag)
	if err := tag.Save(); err != nil {
		return false, err
	}
	return true, nil
}

func reportOnly(Tag, []change.Change) (bool, error) {
	return false, nil
}

// Run scans the root directory and processes every file in order.
//
// Processing stops at the first error. The returned Summary counts the
// files handled up to that point, and the error carries the offending path.
func (m *Manager) Run(ctx context.Context) (change.Summary, error) {
	var summary change.Summary

	commit := committer(writeChanges)
	if m.settings.DryRun {
		commit = reportOnly
	}

	files, err := scan.Discover(m.settings.Root, m.settings.Extension)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error scanning %s: %v", m.settings.Root, err), Level: LevelError})
		return summary, fmt.Errorf("%w: %w", ErrScan, err)
	}

	atomic.StoreInt32(&m.totalFiles, int32(len(files)))
	atomic.StoreInt32(&m.processedFiles, 0)
	m.log.Debug("scan complete", zap.String("root", m.settings.Root), zap.Int("files", len(files)))
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d files in %s", len(files), m.settings.Root), Level: LevelInfo})

	albums := newAlbumIndex(m.settings.ToPlaylistFormat())

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		summary.Total++
		pending, written, err := m.processFile(path, commit)
		if pending {
			summary.Pending++
		}
		if written {
			summary.Changed++
		}
		if err != nil {
			m.progress(ProgressEvent{Message: err.Error(), Level: LevelError})
			return summary, err
		}

		albums.add(path)
		atomic.AddInt32(&m.processedFiles, 1)
	}

	if m.settings.CreatePlaylist && !m.settings.DryRun {
		if err := m.writePlaylists(ctx, albums); err != nil {
			return summary, err
		}
	}

	m.log.Debug("run complete",
		zap.Int("changed", summary.Changed),
		zap.Int("pending", summary.Pending),
		zap.Int("total", summary.Total),
		zap.Bool("dry_run", m.settings.DryRun))

	return summary, nil
}

// GetProgress returns the number of processed and total files.
func (m *Manager) GetProgress() (processed, total int32) {
	return atomic.LoadInt32(&m.processedFiles), atomic.LoadInt32(&m.totalFiles)
}

func (m *Manager) processFile(path string, commit committer) (pending, written bool, err error) {
	tag, err := m.open(path)
	if err != nil {
		return false, false, &FileError{Kind: ErrParse, Path: path, Err: err}
	}
	defer func() {
		if cerr := tag.Close(); cerr != nil {
			m.log.Warn("close tag", zap.String("path", path), zap.Error(cerr))
		}
	}()

	changes := change.Detect(tag, path, m.props)
	if len(changes) == 0 {
		m.log.Debug("up to date", zap.String("path", path))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Up to date: %s", filepath.Base(path)), Level: LevelVerbose})
		return false, false, nil
	}

	m.reporter.Changes(path, changes)
	for _, c := range changes {
		m.progress(ProgressEvent{Message: fmt.Sprintf("%s: %s", filepath.Base(path), change.Line(c)), Level: LevelInfo})
	}

	written, err = commit(tag, changes)
	if err != nil {
		return true, false, &FileError{Kind: ErrApply, Path: path, Err: err}
	}
	if written {
		m.log.Debug("file updated", zap.String("path", path), zap.Int("changes", len(changes)))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Updated: %s", filepath.Base(path)), Level: LevelSuccess})
	}
	return true, written, nil
}

func (m *Manager) writePlaylists(ctx context.Context, albums *albumIndex) error {
	for _, album := range albums.list {
		content := m.playlist.CreatePlaylist(album)
		if err := ioutils.WriteFile(ctx, album.PlaylistPath, []byte(content)); err != nil {
			return &FileError{Kind: ErrApply, Path: album.PlaylistPath, Err: err}
		}
		m.log.Debug("playlist written", zap.String("path", album.PlaylistPath), zap.Int("tracks", len(album.Tracks)))
		m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist for %s", album.Title), Level: LevelSuccess})
	}
	return nil
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}

// albumIndex groups processed files by directory, keeping first-seen order.
type albumIndex struct {
	format model.PlaylistFormat
	byDir  map[string]*model.Album
	list   []*model.Album
}

func newAlbumIndex(format model.PlaylistFormat) *albumIndex {
	return &albumIndex{format: format, byDir: make(map[string]*model.Album)}
}

func (a *albumIndex) add(path string) {
	dir := filepath.Dir(path)
	album, ok := a.byDir[dir]
	if !ok {
		album = model.NewAlbum(dir, a.format)
		a.byDir[dir] = album
		a.list = append(a.list, album)
	}

	res := matcher.MatchFile(path)
	album.AddTrack(model.NewTrack(path, res.Track, res.Artists, res.Title))
}
