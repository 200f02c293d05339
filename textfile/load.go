package textfile

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/guiguan/caster"
	"github.com/npillmayer/textlayout"
	"github.com/npillmayer/textlayout/styled"
)

// maxLineLength is the longest line of a text file we are able to load.
const maxLineLength = 1 << 20

// LoadEvent is broadcast for every paragraph loaded.
type LoadEvent struct {
	Path      string
	Paragraph int              // index of the paragraph
	Range     textlayout.Range // range of the paragraph within the text
	Lines     int              // number of source lines of the paragraph
}

func (e LoadEvent) String() string {
	return fmt.Sprintf("loaded %s: paragraph %d %v from %d lines", e.Path, e.Paragraph, e.Range, e.Lines)
}

// textFile represents an OS file which will be loaded as annotated text.
type textFile struct {
	path string         // file name
	info os.FileInfo    // result from Stat(path)
	file *os.File       // file handle
	cast *caster.Caster // broadcaster for loading progress, may be nil
}

// Load reads a file, which must be a UTF-8 text file, and loads it as
// annotated text. Every paragraph of the file becomes a paragraph of the text,
// styled with style. All paragraphs but the last end with a newline
// character, which lays out as an empty line between paragraphs.
//
// If cast is not nil, a LoadEvent is published for every paragraph. Load does
// not close cast.
func Load(ctx context.Context, name string, style styled.ParagraphStyle, cast *caster.Caster) (*styled.AnnotatedText, error) {
	tf, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer tf.file.Close()
	tf.cast = cast
	return tf.load(ctx, style)
}

// openFile opens an OS file and collect some useful information on it,
// checking for error conditions.
func openFile(name string) (*textFile, error) {
	fi, err := os.Stat(name)
	if err != nil {
		return nil, err
	} else if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("file %s is not a regular file: %w", name, textlayout.ErrInvalidArgument)
	}
	file, err := os.Open(name) // just open for read access
	if err != nil {
		return nil, err
	}
	tf := &textFile{
		path: name,
		info: fi,
		file: file,
	}
	return tf, nil
}

func (tf *textFile) load(ctx context.Context, style styled.ParagraphStyle) (*styled.AnnotatedText, error) {
	tracer().Debugf("loading text file %s (%d bytes)", tf.path, tf.info.Size())
	scanner := bufio.NewScanner(tf.file)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	var paras [][]string
	var para []string
	lineno := 0
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimRight(scanner.Text(), "\r")
		if lineno == 0 {
			line = strings.TrimPrefix(line, "\uFEFF")
		}
		lineno++
		if !utf8.ValidString(line) {
			return nil, fmt.Errorf("%s:%d: invalid UTF-8: %w", tf.path, lineno, textlayout.ErrInvalidArgument)
		}
		if strings.TrimSpace(line) == "" {
			if len(para) > 0 {
				paras = append(paras, para)
				para = nil
			}
			continue
		}
		para = append(para, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error loading text file %s: %w", tf.path, err)
	}
	if len(para) > 0 {
		paras = append(paras, para)
	}
	b := styled.NewTextBuilder()
	for k, lines := range paras {
		if err := b.StartParagraph(style); err != nil {
			return nil, err
		}
		start := b.Len()
		s := strings.Join(lines, " ")
		if k < len(paras)-1 {
			s += "\n"
		}
		if err := b.Append(s, styled.TextStyle{}); err != nil {
			return nil, err
		}
		b.EndParagraph()
		if tf.cast != nil {
			tf.cast.Pub(LoadEvent{
				Path:      tf.path,
				Paragraph: k,
				Range:     textlayout.Range{Start: start, End: b.Len()},
				Lines:     len(lines),
			})
		}
	}
	tracer().Infof("loaded %s: %d lines in %d paragraphs", tf.path, lineno, len(paras))
	return b.Text(), nil
}
