package font

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/goregular"
)

func loadFont(t testing.TB, data []byte) *Font {
	t.Helper()
	f, err := FromBytes(data, 0)
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	t.Cleanup(func() {
		if !f.closed.Load() {
			f.Close()
		}
	})
	return f
}

func TestFromBytesStyle(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Style
	}{
		{"regular", goregular.TTF, DefaultStyle()},
		{"bold", gobold.TTF, Bold()},
		{"italic", goitalic.TTF, Italic()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := loadFont(t, tt.data)
			if got := f.Style(); got != tt.want {
				t.Errorf("Style() = %v, want %v", got, tt.want)
			}
			if f.Upem() != 2048 {
				t.Errorf("Upem() = %d, want 2048", f.Upem())
			}
			if f.Family() == "" {
				t.Error("Family() is empty")
			}
		})
	}
}

func TestFromBytesErrors(t *testing.T) {
	tests := []struct {
		name  string
		data  []byte
		index int
		want  error
	}{
		{"empty", nil, 0, ErrEmptyData},
		{"index", goregular.TTF, 1, ErrIndexOutOfRange},
		{"negative index", goregular.TTF, -1, ErrIndexOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := FromBytes(tt.data, tt.index)
			if f != nil {
				t.Error("got a font on error")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			var le *LoadError
			if !errors.As(err, &le) || le.Index != tt.index {
				t.Errorf("err = %#v, want *LoadError with index %d", err, tt.index)
			}
		})
	}

	if _, err := FromBytes([]byte("not a font"), 0); err == nil {
		t.Error("garbage data parsed")
	}
}

func TestFromFileMissing(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "none.ttf"), 0)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestHasGlyph(t *testing.T) {
	f := loadFont(t, goregular.TTF)
	for range 2 { // second pass hits the coverage cache
		if !f.HasGlyph('A') {
			t.Error("HasGlyph('A') = false")
		}
		if f.HasGlyph('א') {
			t.Error("HasGlyph(alef) = true")
		}
	}
	if gid, ok := f.GlyphIndex('A'); !ok || gid == 0 {
		t.Errorf("GlyphIndex('A') = %d, %v", gid, ok)
	}
}

func TestExtents(t *testing.T) {
	f := loadFont(t, goregular.TTF)
	ext, ok := f.HorizontalExtents()
	if !ok {
		t.Fatal("HorizontalExtents not found")
	}
	if ext.Ascender <= 0 || ext.Descender >= 0 {
		t.Errorf("extents = %+v, want positive ascender and negative descender", ext)
	}
}

func TestCloneAndClose(t *testing.T) {
	f, err := FromBytes(goregular.TTF, 0)
	if err != nil {
		t.Fatal(err)
	}
	c := f.Clone()
	if !c.SameFace(f) || c == f {
		t.Fatal("clone does not share the face")
	}

	other := loadFont(t, goregular.TTF)
	if other.SameFace(f) {
		t.Error("separate loads share a face")
	}

	f.Close()
	// The clone keeps the face alive.
	if !c.HasGlyph('A') {
		t.Error("clone lost coverage after original closed")
	}
	c.Close()
	if c.face.font != nil {
		t.Error("face not released after last Close")
	}

	mustPanic(t, "use after Close", func() { c.Upem() })
	mustPanic(t, "double Close", func() { c.Close() })
}

func TestOnRelease(t *testing.T) {
	f, err := FromBytes(goregular.TTF, 0)
	if err != nil {
		t.Fatal(err)
	}
	calls := map[string]int{}
	f.OnRelease("a", func() { calls["old"]++ })
	f.OnRelease("a", func() { calls["a"]++ })
	f.WithFace(func(*gotext.Face) {
		f.OnRelease("b", func() { calls["b"]++ })
	})

	c := f.Clone()
	f.Close()
	if len(calls) != 0 {
		t.Fatalf("hooks ran with a handle still open: %v", calls)
	}
	c.Close()
	if calls["a"] != 1 || calls["b"] != 1 || calls["old"] != 0 {
		t.Errorf("hook calls = %v, want a and b once", calls)
	}
}

func TestSynthesize(t *testing.T) {
	f := loadFont(t, goregular.TTF)
	s := f.Synthesize(Synthesis{Embolden: 0.02})
	defer s.Close()

	if !s.SameFace(f) {
		t.Error("synthesized font does not share the face")
	}
	if got := s.Synthesis(); got.Embolden != 0.02 || got.Slant != 0 {
		t.Errorf("Synthesis() = %+v", got)
	}
	if !f.Synthesis().IsZero() {
		t.Error("Synthesize modified the source handle")
	}
	if s.Style() != f.Style() {
		t.Error("synthesis changed the declared style")
	}
}

func TestConcurrentHasGlyph(t *testing.T) {
	f := loadFont(t, goregular.TTF)
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := rune(0x20); r < 0x400; r++ {
				f.HasGlyph(r)
			}
			f.HorizontalExtents()
		}()
	}
	wg.Wait()
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(WithCacheLimit(4), WithFinder(func(name string) (string, error) {
		if name == "goregular" {
			return path, nil
		}
		return "", errors.New("no such font")
	}))

	a, err := l.Load(path, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	defer a.Close()
	b, err := l.LoadName("goregular", 0)
	if err != nil {
		t.Fatalf("LoadName: %v", err)
	}
	defer b.Close()

	if a.Typeface() != b.Typeface() {
		t.Error("loader parsed the same file twice")
	}
	if a.SameFace(b) {
		t.Error("loads returned handles to one face")
	}
	var stats LoaderStats = l.Stats()
	if stats.Misses != 1 || stats.Hits != 1 {
		t.Errorf("Stats() = %+v, want 1 miss and 1 hit", stats)
	}

	if _, err := l.LoadName("missing", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadName(missing) err = %v, want ErrNotFound", err)
	}
	if _, err := l.Load(path, 3); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Load index 3 err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestStyleNormalize(t *testing.T) {
	if got := (Style{}).Normalize(); got != DefaultStyle() {
		t.Errorf("zero Style normalizes to %v", got)
	}
	if got := (Style{Weight: 700, Italic: true}).Normalize(); got != BoldItalic() {
		t.Errorf("Normalize = %v, want %v", got, BoldItalic())
	}
}

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}
