package retag

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handiism/retagger/internal/audio"
	"github.com/handiism/retagger/internal/change"
	"github.com/handiism/retagger/internal/config"
	ioutils "github.com/handiism/retagger/internal/io"
	"github.com/handiism/retagger/internal/model"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var fakeAudio = append([]byte{0xFF, 0xFB, 0x90, 0x64}, bytes.Repeat([]byte{0x00}, 60)...)

func writeFiles(t *testing.T, root string, rels ...string) []string {
	t.Helper()
	var paths []string
	for _, rel := range rels {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, fakeAudio, 0644); err != nil {
			t.Fatal(err)
		}
		paths = append(paths, path)
	}
	return paths
}

func newTestManager(t *testing.T, settings *config.Settings, out *bytes.Buffer, opts ...Option) *Manager {
	t.Helper()
	m, err := NewManager(settings, change.NewReporter(out, false), opts...)
	if err != nil {
		t.Fatalf("NewManager() error = %v", err)
	}
	return m
}

func testSettings(root string) *config.Settings {
	s := config.DefaultSettings()
	s.Root = root
	return s
}

func readFields(t *testing.T, path string) map[string]model.Value {
	t.Helper()
	store, err := audio.NewStore(audio.StoreOptions{})
	if err != nil {
		t.Fatal(err)
	}
	tag, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open(%q) error = %v", path, err)
	}
	defer tag.Close()

	fields := make(map[string]model.Value)
	for _, id := range []string{"TIT2", "TPE1", "TALB", "TRCK"} {
		fields[id] = tag.Field(id)
	}
	return fields
}

func TestRun_EndToEnd(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root,
		"GreatestHits/01 Alice ft. Bob - Song.mp3",
		"GreatestHits/Artist - Title.mp3",
	)

	var out bytes.Buffer
	summary, err := newTestManager(t, testSettings(root), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Changed != 2 || summary.Total != 2 {
		t.Errorf("Run() summary = %+v, want 2/2 changed", summary)
	}

	want := map[string]model.Value{
		"TIT2": model.Some("Song"),
		"TPE1": model.Some("Alice/Bob"),
		"TALB": model.Some("GreatestHits"),
		"TRCK": model.Some("1"),
	}
	got := readFields(t, paths[0])
	for id, w := range want {
		if !got[id].Equal(w) {
			t.Errorf("%s = %v, want %v", id, got[id], w)
		}
	}
	if got := readFields(t, paths[1])["TRCK"]; got.Present() {
		t.Errorf("TRCK = %v, want absent for a file name without track number", got)
	}

	if !strings.Contains(out.String(), "File: "+paths[0]+":\n  Title: - --> Song\n") {
		t.Errorf("report missing file block, got:\n%s", out.String())
	}

	data, err := os.ReadFile(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasSuffix(data, fakeAudio) {
		t.Error("audio data was not preserved")
	}

	out.Reset()
	summary, err = newTestManager(t, testSettings(root), &out).Run(context.Background())
	if err != nil {
		t.Fatalf("second Run() error = %v", err)
	}
	if summary.Changed != 0 || summary.Pending != 0 || summary.Total != 2 {
		t.Errorf("second Run() summary = %+v, want nothing to change", summary)
	}
	if out.Len() != 0 {
		t.Errorf("second run should report nothing, got:\n%s", out.String())
	}
}

func TestRun_DryRunLeavesFilesUntouched(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, "GreatestHits/01 Alice ft. Bob - Song.mp3")

	before, err := ioutils.Checksum(paths[0])
	if err != nil {
		t.Fatal(err)
	}

	settings := testSettings(root)
	settings.DryRun = true
	settings.CreatePlaylist = true

	var out bytes.Buffer
	summary, err := newTestManager(t, settings, &out).Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	after, err := ioutils.Checksum(paths[0])
	if err != nil {
		t.Fatal(err)
	}
	if before != after {
		t.Error("test run modified the file")
	}
	if summary.Changed != 0 || summary.Pending != 1 || summary.Total != 1 {
		t.Errorf("Run() summary = %+v, want 0 changed, 1 pending, 1 total", summary)
	}
	if !strings.Contains(out.String(), "Artist: - --> Alice/Bob") {
		t.Errorf("test run should still report changes, got:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(root, "GreatestHits", "GreatestHits.m3u")); !os.IsNotExist(err) {
		t.Error("test run should not write playlists")
	}
}

// fakeTag is an in-memory Tag.
type fakeTag struct {
	fields  map[string]string
	writes  int
	saves   int
	closed  bool
	saveErr error
}

func (f *fakeTag) Field(id string) model.Value {
	if v, ok := f.fields[id]; ok {
		return model.Some(v)
	}
	return model.None()
}

func (f *fakeTag) SetField(id, text string) { f.writes++; f.fields[id] = text }
func (f *fakeTag) DeleteField(id string)    { f.writes++; delete(f.fields, id) }
func (f *fakeTag) Close() error             { f.closed = true; return nil }

func (f *fakeTag) Save() error {
	f.saves++
	return f.saveErr
}

func TestRun_DryRunNeverWrites(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "A/1 x.mp3", "A/2 y.mp3")

	var tags []*fakeTag
	open := func(string) (Tag, error) {
		tag := &fakeTag{fields: map[string]string{}}
		tags = append(tags, tag)
		return tag, nil
	}

	settings := testSettings(root)
	settings.DryRun = true

	var out bytes.Buffer
	if _, err := newTestManager(t, settings, &out, WithOpener(open)).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(tags) != 2 {
		t.Fatalf("opened %d tags, want 2", len(tags))
	}
	for i, tag := range tags {
		if tag.writes != 0 || tag.saves != 0 {
			t.Errorf("tag %d: %d writes, %d saves, want none", i, tag.writes, tag.saves)
		}
		if !tag.closed {
			t.Errorf("tag %d was not closed", i)
		}
	}
}

func TestRun_ScanError(t *testing.T) {
	var out bytes.Buffer
	settings := testSettings(filepath.Join(t.TempDir(), "missing"))

	summary, err := newTestManager(t, settings, &out).Run(context.Background())
	if !errors.Is(err, ErrScan) {
		t.Fatalf("Run() error = %v, want ErrScan", err)
	}
	if summary.Total != 0 {
		t.Errorf("summary.Total = %d, want 0", summary.Total)
	}
}

func TestRun_ParseErrorStopsRun(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, "A/1 a.mp3", "A/2 b.mp3", "A/3 c.mp3")

	errCorrupt := errors.New("corrupt header")
	var opened []string
	open := func(path string) (Tag, error) {
		opened = append(opened, path)
		if path == paths[1] {
			return nil, errCorrupt
		}
		return &fakeTag{fields: map[string]string{}}, nil
	}

	var out bytes.Buffer
	summary, err := newTestManager(t, testSettings(root), &out, WithOpener(open)).Run(context.Background())

	if !errors.Is(err, ErrParse) || !errors.Is(err, errCorrupt) {
		t.Fatalf("Run() error = %v, want ErrParse wrapping the cause", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != paths[1] {
		t.Fatalf("Run() error = %v, want FileError for %s", err, paths[1])
	}
	if !strings.Contains(err.Error(), paths[1]) {
		t.Errorf("error message %q should contain the path", err.Error())
	}
	if len(opened) != 2 {
		t.Errorf("opened %d files, processing should stop at the failing one", len(opened))
	}
	if summary.Changed != 1 || summary.Total != 2 {
		t.Errorf("summary = %+v, want 1 changed of 2 seen", summary)
	}
}

func TestRun_CorruptHeaderKeepsAudio(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, "A/1 a.mp3", "A/2 b.mp3", "A/3 c.mp3")

	corrupt := append([]byte("ID3\x04\x00\x00\x7f\x7f\x7f\x7f"), fakeAudio...)
	if err := os.WriteFile(paths[1], corrupt, 0644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	summary, err := newTestManager(t, testSettings(root), &out).Run(context.Background())

	if !errors.Is(err, ErrParse) || !errors.Is(err, audio.ErrCorruptTag) {
		t.Fatalf("Run() error = %v, want ErrParse wrapping ErrCorruptTag", err)
	}
	var fe *FileError
	if !errors.As(err, &fe) || fe.Path != paths[1] {
		t.Fatalf("Run() error = %v, want FileError for %s", err, paths[1])
	}
	if summary.Changed != 1 || summary.Total != 2 {
		t.Errorf("summary = %+v, want 1 changed of 2 seen", summary)
	}

	after, err := os.ReadFile(paths[1])
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(after, corrupt) {
		t.Errorf("corrupt file changed: %d bytes before, %d after", len(corrupt), len(after))
	}
	if fields := readFields(t, paths[2]); fields["TIT2"].Present() {
		t.Errorf("file after the failure was tagged: %v", fields)
	}
}

func TestRun_ApplyError(t *testing.T) {
	root := t.TempDir()
	paths := writeFiles(t, root, "A/1 a.mp3")

	errDiskFull := errors.New("disk full")
	open := func(string) (Tag, error) {
		return &fakeTag{fields: map[string]string{}, saveErr: errDiskFull}, nil
	}

	var out bytes.Buffer
	summary, err := newTestManager(t, testSettings(root), &out, WithOpener(open)).Run(context.Background())

	if !errors.Is(err, ErrApply) || !errors.Is(err, errDiskFull) {
		t.Fatalf("Run() error = %v, want ErrApply wrapping the cause", err)
	}
	if !strings.Contains(err.Error(), paths[0]) {
		t.Errorf("error message %q should contain the path", err.Error())
	}
	if summary.Changed != 0 {
		t.Errorf("summary.Changed = %d, a failed save must not count", summary.Changed)
	}
}

func TestRun_Playlists(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"GreatestHits/01 Alice ft. Bob - Song.mp3",
		"GreatestHits/02 Intro.mp3",
		"Other/Track.mp3",
	)

	settings := testSettings(root)
	settings.CreatePlaylist = true
	settings.M3UExtended = false

	var out bytes.Buffer
	if _, err := newTestManager(t, settings, &out).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(root, "GreatestHits", "GreatestHits.m3u"))
	if err != nil {
		t.Fatalf("playlist not written: %v", err)
	}
	if want := "01 Alice ft. Bob - Song.mp3\n02 Intro.mp3\n"; string(data) != want {
		t.Errorf("playlist = %q, want %q", data, want)
	}
	if _, err := os.Stat(filepath.Join(root, "Other", "Other.m3u")); err != nil {
		t.Errorf("second playlist not written: %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "A/1 a.mp3")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	summary, err := newTestManager(t, testSettings(root), &out).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if summary.Total != 0 {
		t.Errorf("summary.Total = %d, want 0", summary.Total)
	}
}

func TestRun_ProgressAndLogging(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "A/1 a.mp3", "A/2 b.mp3")

	core, logs := observer.New(zap.DebugLevel)
	var events []ProgressEvent

	var out bytes.Buffer
	m := newTestManager(t, testSettings(root), &out,
		WithLogger(zap.New(core)),
		WithProgress(func(e ProgressEvent) { events = append(events, e) }),
	)
	if _, err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	processed, total := m.GetProgress()
	if processed != 2 || total != 2 {
		t.Errorf("GetProgress() = %d/%d, want 2/2", processed, total)
	}
	if n := logs.FilterMessage("file updated").Len(); n != 2 {
		t.Errorf("logged %d file updates, want 2", n)
	}

	var successes int
	for _, e := range events {
		if e.Level == LevelSuccess {
			successes++
		}
	}
	if successes != 2 {
		t.Errorf("got %d success events, want 2", successes)
	}
}

func TestNewManager_UnknownCharset(t *testing.T) {
	settings := testSettings(t.TempDir())
	settings.LegacyCharset = "no-such-charset"

	if _, err := NewManager(settings, change.NewReporter(&bytes.Buffer{}, false)); !errors.Is(err, audio.ErrUnknownCharset) {
		t.Errorf("NewManager() error = %v, want ErrUnknownCharset", err)
	}
}
