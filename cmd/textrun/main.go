// Command textrun segments text into font runs, shapes it, and prints the
// runs and glyphs.
//
// Usage:
//
//	textrun -font NotoSans-Regular.ttf -font NotoSansHebrew -text "Hello שלום" -bold
//
// Fonts are file paths or installed font names, optionally followed by
// "@index" to select a face in a collection. Without -font the Go Regular
// font is used. Output is a table on a terminal and JSON otherwise, or
// when -json is set.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/term"

	"github.com/gogpu/textrun"
	"github.com/gogpu/textrun/bidi"
	"github.com/gogpu/textrun/font"
	"github.com/gogpu/textrun/path"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("textrun: ")

	tty := term.IsTerminal(int(os.Stdout.Fd()))
	if err := run(os.Args[1:], os.Stdout, tty); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

type options struct {
	fonts    []string
	text     string
	bold     bool
	italic   bool
	paths    bool
	embolden float64
	slant    float64
	lang     string
	dir      string
	json     bool
	verbose  bool
}

func parseFlags(args []string) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("textrun", flag.ContinueOnError)
	fs.Func("font", "font file or installed font name, with optional @index (repeatable)", func(s string) error {
		o.fonts = append(o.fonts, s)
		return nil
	})
	fs.StringVar(&o.text, "text", "Hello, world", "text to shape")
	fs.BoolVar(&o.bold, "bold", false, "request bold")
	fs.BoolVar(&o.italic, "italic", false, "request italic")
	fs.BoolVar(&o.paths, "paths", false, "extract glyph outlines")
	fs.Float64Var(&o.embolden, "embolden", 0.02, "synthetic bold strength, fraction of em (0 disables)")
	fs.Float64Var(&o.slant, "slant", 0.2, "synthetic oblique shear (0 disables)")
	fs.StringVar(&o.lang, "lang", "", "BCP 47 language tag")
	fs.StringVar(&o.dir, "dir", "auto", "paragraph direction: auto, ltr or rtl")
	fs.BoolVar(&o.json, "json", false, "print JSON even on a terminal")
	fs.BoolVar(&o.verbose, "v", false, "debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

func run(args []string, stdout io.Writer, tty bool) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.verbose {
		textrun.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	dir, err := parseDirection(o.dir)
	if err != nil {
		return err
	}

	fonts, err := loadFonts(font.NewLoader(), o.fonts)
	if err != nil {
		return err
	}
	defer func() {
		for _, f := range fonts {
			f.Close()
		}
	}()

	style := font.DefaultStyle()
	if o.bold {
		style.Weight = font.WeightBold
	}
	style.Italic = o.italic

	b := textrun.NewBuilder(fonts,
		textrun.WithDetector(bidi.NewDetector(bidi.WithDirection(dir))),
		textrun.WithLanguage(o.lang))
	b.Push(o.text, style)
	if b.HasMissingGlyphs() {
		log.Printf("warning: some characters are not covered by any font")
	}
	layout := b.Build()
	shaped := layout.Shape(textrun.ShapeParams{
		EmboldenStrength: float32(o.embolden),
		Slant:            float32(o.slant),
		EmitPaths:        o.paths,
	})

	rep := newReport(layout, shaped)
	if o.json || !tty {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	return rep.writeTable(stdout)
}

func parseDirection(s string) (bidi.Direction, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return bidi.Auto, nil
	case "ltr":
		return bidi.LTR, nil
	case "rtl":
		return bidi.RTL, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

// loadFonts resolves every spec to a font, falling back to Go Regular
// when specs is empty.
func loadFonts(l *font.Loader, specs []string) ([]*font.Font, error) {
	if len(specs) == 0 {
		f, err := font.FromBytes(goregular.TTF, 0)
		if err != nil {
			return nil, err
		}
		return []*font.Font{f}, nil
	}

	fonts := make([]*font.Font, 0, len(specs))
	for _, spec := range specs {
		f, err := loadFont(l, spec)
		if err != nil {
			for _, f := range fonts {
				f.Close()
			}
			return nil, err
		}
		fonts = append(fonts, f)
	}
	return fonts, nil
}

func loadFont(l *font.Loader, spec string) (*font.Font, error) {
	name, index := spec, 0
	if before, after, ok := strings.Cut(spec, "@"); ok {
		n, err := strconv.Atoi(after)
		if err != nil {
			return nil, fmt.Errorf("bad face index in %q: %w", spec, err)
		}
		name, index = before, n
	}
	if _, err := os.Stat(name); err == nil {
		return l.Load(name, index)
	}
	return l.LoadName(name, index)
}

type report struct {
	BaseLevel uint8       `json:"base_level"`
	Fonts     []string    `json:"fonts"`
	Runs      []runReport `json:"runs"`
}

type runReport struct {
	Text           string        `json:"text"`
	Offset         int           `json:"offset"`
	Length         int           `json:"length"`
	Level          uint8         `json:"level"`
	Script         string        `json:"script"`
	Font           int           `json:"font"`
	SyntheticBold  bool          `json:"synthetic_bold,omitempty"`
	SyntheticSlant bool          `json:"synthetic_slant,omitempty"`
	Glyphs         []glyphReport `json:"glyphs"`
}

type glyphReport struct {
	ID       uint32 `json:"id"`
	Cluster  int    `json:"cluster"`
	XAdvance int32  `json:"x_advance"`
	YAdvance int32  `json:"y_advance,omitempty"`
	XOffset  int32  `json:"x_offset,omitempty"`
	YOffset  int32  `json:"y_offset,omitempty"`
	Path     string `json:"path,omitempty"`
}

func newReport(l *textrun.Layout, shaped []textrun.GlyphRun) report {
	rep := report{BaseLevel: l.ParagraphBaseLevel()}
	for _, f := range l.Fonts() {
		rep.Fonts = append(rep.Fonts, f.Family())
	}
	runs := l.Runs()
	for _, gr := range shaped {
		fr := runs[gr.FontRunIndex]
		rr := runReport{
			Text:           string(l.RunText(gr.FontRunIndex)),
			Offset:         fr.Offset,
			Length:         fr.Length,
			Level:          fr.BidiLevel,
			Script:         fr.Script.String(),
			Font:           fr.FontIndex,
			SyntheticBold:  fr.SyntheticBold,
			SyntheticSlant: fr.SyntheticSlant,
		}
		for j, g := range gr.Glyphs {
			gl := glyphReport{
				ID:       g.ID,
				Cluster:  g.Cluster,
				XAdvance: g.XAdvance,
				YAdvance: g.YAdvance,
				XOffset:  g.XOffset,
				YOffset:  g.YOffset,
			}
			if gr.Paths != nil {
				gl.Path = svgPath(gr.Paths[j])
			}
			rr.Glyphs = append(rr.Glyphs, gl)
		}
		rep.Runs = append(rep.Runs, rr)
	}
	return rep
}

func (r report) writeTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "base level %d, fonts %s\n\n", r.BaseLevel, strings.Join(r.Fonts, ", "))
	fmt.Fprintln(tw, "RUN\tTEXT\tRANGE\tLEVEL\tSCRIPT\tFONT\tSYNTH\tGLYPHS")
	for i, rr := range r.Runs {
		synth := "-"
		switch {
		case rr.SyntheticBold && rr.SyntheticSlant:
			synth = "bold+slant"
		case rr.SyntheticBold:
			synth = "bold"
		case rr.SyntheticSlant:
			synth = "slant"
		}
		ids := make([]string, len(rr.Glyphs))
		for j, g := range rr.Glyphs {
			ids[j] = fmt.Sprintf("%d+%d", g.ID, g.XAdvance)
		}
		fmt.Fprintf(tw, "%d\t%q\t[%d,%d)\t%d\t%s\t%d\t%s\t%s\n",
			i, rr.Text, rr.Offset, rr.Offset+rr.Length, rr.Level, rr.Script, rr.Font, synth, strings.Join(ids, " "))
	}
	return tw.Flush()
}

// svgPath renders a path as SVG path data.
func svgPath(p *path.Path) string {
	var sb strings.Builder
	for c := range p.Commands() {
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch c.Verb {
		case path.MoveTo:
			sb.WriteString("M")
		case path.LineTo:
			sb.WriteString("L")
		case path.QuadTo:
			sb.WriteString("Q")
		case path.CubicTo:
			sb.WriteString("C")
		case path.Close:
			sb.WriteString("Z")
		}
		for i, pt := range c.Pts() {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.FormatFloat(float64(pt.X), 'g', -1, 32))
			sb.WriteByte(',')
			sb.WriteString(strconv.FormatFloat(float64(pt.Y), 'g', -1, 32))
		}
	}
	return sb.String()
}
