package delta

import (
	"bufio"
	"fmt"
	"io"

	"github.com/trezbouchez/rollsync/src/internal/errors"
)

// EncodeText writes d in its external text format: one segment per line,
// "REUSE <offset> <length>" or "LITERAL <offset> <length>", fields
// space-separated unsigned decimal integers.
func EncodeText(w io.Writer, d Delta) error {
	bw := bufio.NewWriter(w)
	for _, seg := range d.Segments {
		if _, err := fmt.Fprintf(bw, "%s %d %d\n", seg.Kind, seg.Offset, seg.Length); err != nil {
			return errors.Wrap(err, "writing delta segment")
		}
	}
	return bw.Flush()
}

// DecodeText parses the text format EncodeText produces. NewLength is not
// part of the text format, so a decoded Delta always has NewLength 0; it
// is only meaningful for deltas assembled directly by Assemble.
func DecodeText(r io.Reader) (Delta, error) {
	var d Delta
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		var kindWord string
		var offset, length uint64
		n, err := fmt.Sscanf(line, "%s %d %d", &kindWord, &offset, &length)
		if err != nil || n != 3 {
			return Delta{}, errors.Errorf("delta text line %d: malformed segment %q", lineNo, line)
		}
		var kind Kind
		switch kindWord {
		case "REUSE":
			kind = Reuse
		case "LITERAL":
			kind = Literal
		default:
			return Delta{}, errors.Errorf("delta text line %d: unknown segment kind %q", lineNo, kindWord)
		}
		d.Segments = append(d.Segments, Segment{Kind: kind, Offset: offset, Length: length})
	}
	if err := scanner.Err(); err != nil {
		return Delta{}, errors.Wrap(err, "reading delta text")
	}
	return d, nil
}
