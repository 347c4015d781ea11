package font

import (
	"bytes"
	"fmt"
	"os"

	"github.com/flopp/go-findfont"
	gotext "github.com/go-text/typesetting/font"

	"github.com/gogpu/textrun/internal/cache"
	"github.com/gogpu/textrun/internal/logx"
)

const memorySource = "<memory>"

// FromBytes parses face index of an OpenType font or collection.
// Single-font files only have index 0.
func FromBytes(data []byte, index int) (*Font, error) {
	faces, err := parse(data)
	if err != nil {
		return nil, &LoadError{Source: memorySource, Index: index, Err: err}
	}
	return pick(faces, memorySource, index)
}

// FromFile loads face index of the font file at path.
func FromFile(path string, index int) (*Font, error) {
	faces, err := parseFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Index: index, Err: err}
	}
	return pick(faces, path, index)
}

// FromName locates an installed font by file name, with or without its
// extension, and loads face index from it. Exact file names win over
// substring matches.
func FromName(name string, index int) (*Font, error) {
	path, err := findFont(findfont.Find, name)
	if err != nil {
		return nil, &LoadError{Source: name, Index: index, Err: err}
	}
	return FromFile(path, index)
}

func findFont(find func(string) (string, error), name string) (string, error) {
	path, err := find(name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return path, nil
}

func parse(data []byte) ([]*gotext.Font, error) {
	if len(data) == 0 {
		return nil, ErrEmptyData
	}
	faces, err := gotext.ParseTTC(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	fonts := make([]*gotext.Font, len(faces))
	for i, f := range faces {
		fonts[i] = f.Font
	}
	return fonts, nil
}

func parseFile(path string) ([]*gotext.Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return parse(data)
}

func pick(fonts []*gotext.Font, source string, index int) (*Font, error) {
	if index < 0 || index >= len(fonts) {
		return nil, &LoadError{
			Source: source,
			Index:  index,
			Err:    fmt.Errorf("%w: collection has %d faces", ErrIndexOutOfRange, len(fonts)),
		}
	}
	return newFont(fonts[index], source), nil
}

// Loader loads fonts from files and keeps recently parsed files in an
// LRU cache, so faces of one collection, or repeated loads of one file,
// share a single parse. Each load still returns an independent handle.
//
// Loader is safe for concurrent use.
type Loader struct {
	files *cache.Cache[string, []*gotext.Font]
	find  func(string) (string, error)
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// DefaultCacheLimit is the default number of parsed files a Loader keeps.
const DefaultCacheLimit = 32

// WithCacheLimit sets how many parsed files the loader keeps.
// A limit of 0 keeps every file.
func WithCacheLimit(n int) LoaderOption {
	return func(l *Loader) {
		l.files = cache.New[string, []*gotext.Font](n)
	}
}

// WithFinder replaces the system font lookup used by LoadName.
// The default searches the platform font directories.
func WithFinder(find func(name string) (path string, err error)) LoaderOption {
	return func(l *Loader) {
		l.find = find
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		files: cache.New[string, []*gotext.Font](DefaultCacheLimit),
		find:  findfont.Find,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns face index of the font file at path.
func (l *Loader) Load(path string, index int) (*Font, error) {
	fonts, err := l.files.GetOrCreate(path, func() ([]*gotext.Font, error) {
		logx.L().Debug("font: parsing file", "path", path)
		return parseFile(path)
	})
	if err != nil {
		return nil, &LoadError{Source: path, Index: index, Err: err}
	}
	return pick(fonts, path, index)
}

// LoadName locates an installed font by name and loads face index.
func (l *Loader) LoadName(name string, index int) (*Font, error) {
	path, err := findFont(l.find, name)
	if err != nil {
		return nil, &LoadError{Source: name, Index: index, Err: err}
	}
	return l.Load(path, index)
}

// LoaderStats reports the parsed file cache counters of a Loader.
type LoaderStats = cache.Stats

// Stats returns the file cache statistics.
func (l *Loader) Stats() LoaderStats { return l.files.Stats() }
