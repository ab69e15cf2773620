package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bogem/id3v2"
	"github.com/handiism/retagger/internal/model"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// ErrUnknownCharset is returned by NewStore when the legacy charset name is
// not a supported IANA character set.
var ErrUnknownCharset = errors.New("unknown charset")

// ErrCorruptTag is returned by Open when the ID3v2 header cannot describe
// the file it heads.
var ErrCorruptTag = errors.New("corrupt ID3v2 header")

const tagHeaderSize = 10

// StoreOptions configures how tags are opened.
//
// Example:
//
//	opts := StoreOptions{
//	    LegacyCharset: "windows-1251", // re-decode Latin-1 frames as Cyrillic
//	}
type StoreOptions struct {
	// LegacyCharset is the IANA name of the code page that old taggers
	// wrote into frames marked as ISO-8859-1. Empty means the frames are
	// taken at face value.
	LegacyCharset string
}

// Store opens ID3v2 tags of MP3 files.
//
// Store uses the id3v2 library to read and write text frames. Files
// without a tag open as an empty tag, and saving writes a new tag in
// front of the untouched audio data.
//
// Example:
//
//	store, err := NewStore(StoreOptions{})
//	tag, err := store.Open("/music/Hits/01 Song.mp3")
//	if err != nil {
//	    return err
//	}
//	defer tag.Close()
//
//	tag.SetField("TIT2", "Song")
//	err = tag.Save()
type Store struct {
	legacy encoding.Encoding
}

// NewStore creates a Store. It fails with ErrUnknownCharset when
// opts.LegacyCharset cannot be resolved.
func NewStore(opts StoreOptions) (*Store, error) {
	s := &Store{}
	if opts.LegacyCharset == "" {
		return s, nil
	}

	enc, err := ianaindex.IANA.Encoding(opts.LegacyCharset)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, opts.LegacyCharset)
	}
	s.legacy = enc
	return s, nil
}

// Open parses the tag of the MP3 file at path.
//
// The returned TagFile holds the file open until Close is called.
// A tag whose header claims more bytes than the file holds fails with
// ErrCorruptTag, since saving it would drop the audio behind it.
func (s *Store) Open(path string) (*TagFile, error) {
	if err := checkHeader(path); err != nil {
		return nil, err
	}

	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return nil, err
	}
	return &TagFile{tag: tag, legacy: s.legacy}, nil
}

// checkHeader validates the declared size of a leading ID3v2 tag against
// the file size. Files without a tag pass.
func checkHeader(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header := make([]byte, tagHeaderSize)
	n, err := io.ReadFull(file, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return err
	}
	if n < 3 || !bytes.Equal(header[:3], []byte("ID3")) {
		return nil
	}
	if n < tagHeaderSize {
		return fmt.Errorf("%w: truncated header", ErrCorruptTag)
	}

	size, ok := synchsafe(header[6:10])
	if !ok {
		return fmt.Errorf("%w: size is not synchsafe", ErrCorruptTag)
	}
	end := int64(tagHeaderSize) + size
	if header[5]&0x10 != 0 {
		end += tagHeaderSize // footer
	}
	if end > info.Size() {
		return fmt.Errorf("%w: tag size %d exceeds file size %d", ErrCorruptTag, end, info.Size())
	}
	return nil
}

// synchsafe decodes a 28-bit integer stored in the low seven bits of each byte.
func synchsafe(b []byte) (int64, bool) {
	var n int64
	for _, c := range b {
		if c&0x80 != 0 {
			return 0, false
		}
		n = n<<7 | int64(c)
	}
	return n, true
}

// TagFile is the ID3v2 tag of one open file.
type TagFile struct {
	tag    *id3v2.Tag
	legacy encoding.Encoding
}

// Field returns the text of the first frame with the given id, or an absent
// value when the tag has no such frame.
func (f *TagFile) Field(id string) model.Value {
	frames := f.tag.GetFrames(id)
	if len(frames) == 0 {
		return model.None()
	}

	tf, ok := frames[0].(id3v2.TextFrame)
	if !ok {
		return model.None()
	}

	if f.legacy != nil && tf.Encoding.Equals(id3v2.EncodingISO) {
		return model.Some(f.redecode(tf.Text))
	}
	return model.Some(tf.Text)
}

// SetField replaces all frames with id by a single text frame.
//
// The tag's default encoding is used unless it cannot represent text, in
// which case UTF-16 is used.
func (f *TagFile) SetField(id, text string) {
	enc := f.tag.DefaultEncoding()
	if enc.Equals(id3v2.EncodingISO) && !representableLatin1(text) {
		enc = id3v2.EncodingUTF16
	}

	f.tag.DeleteFrames(id)
	f.tag.AddTextFrame(id, enc, text)
}

// DeleteField removes all frames with id.
func (f *TagFile) DeleteField(id string) {
	f.tag.DeleteFrames(id)
}

// Save writes the tag back to the file, preserving the audio data.
func (f *TagFile) Save() error {
	return f.tag.Save()
}

// Close releases the underlying file.
func (f *TagFile) Close() error {
	return f.tag.Close()
}

// redecode turns text that was decoded as Latin-1 back into its raw bytes
// and decodes them with the legacy charset. Text that does not survive the
// round trip is returned unchanged.
func (f *TagFile) redecode(text string) string {
	raw, err := charmap.ISO8859_1.NewEncoder().String(text)
	if err != nil {
		return text
	}
	out, err := f.legacy.NewDecoder().String(raw)
	if err != nil {
		return text
	}
	return out
}

func representableLatin1(s string) bool {
	_, err := charmap.ISO8859_1.NewEncoder().String(s)
	return err == nil
}
