package styled

import (
	"fmt"
	"slices"

	"github.com/npillmayer/textlayout"
)

// Paragraphs splits a text into paragraphs. It returns the explicit paragraph
// styles of t, ordered by position, with gaps filled by default paragraphs.
// Every paragraph's style is merged with overall, which provides values for
// attributes left unset.
//
// The result is a partition of the text: paragraphs are contiguous, do not
// overlap and cover [0, t.Len()). Zero-length paragraph styles are kept as
// empty paragraphs. A text without any characters consists of one empty
// paragraph.
//
// Overlapping paragraph styles cannot be repaired and result in
// textlayout.ErrInvalidArgument.
func (t *AnnotatedText) Paragraphs(overall ParagraphStyle) ([]ParagraphSpan, error) {
	paras := slices.Clone(t.paras)
	slices.SortStableFunc(paras, func(a, b ParagraphSpan) int {
		if a.Range.Start != b.Range.Start {
			return a.Range.Start - b.Range.Start
		}
		return a.Range.End - b.Range.End
	})
	partition := make([]ParagraphSpan, 0, len(paras)+1)
	pos := 0
	for _, p := range paras {
		if p.Range.Start < pos {
			return nil, fmt.Errorf("paragraph style %v overlaps preceding paragraph: %w",
				p.Range, textlayout.ErrInvalidArgument)
		}
		if p.Range.Start > pos {
			partition = append(partition, ParagraphSpan{
				Style: overall,
				Range: textlayout.Range{Start: pos, End: p.Range.Start},
			})
		}
		partition = append(partition, ParagraphSpan{Style: p.Style.Merge(overall), Range: p.Range})
		pos = p.Range.End
	}
	if pos < t.Len() || len(partition) == 0 {
		partition = append(partition, ParagraphSpan{
			Style: overall,
			Range: textlayout.Range{Start: pos, End: t.Len()},
		})
	}
	tracer().Debugf("text of length %d has %d paragraphs", t.Len(), len(partition))
	return partition, nil
}
