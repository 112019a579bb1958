// core/index/index.go
package index

import (
	"bufio"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Occurrence is a concrete location in the indexed graph: the node holding
// the match and the offset of its first character within that node.
type Occurrence struct {
	Node   int64
	Offset int32
}

// SearchRange is a half-open [Lo, Hi) window over the index's path table.
// The zero value is the distinguished "no match" range.
type SearchRange struct {
	Lo, Hi int
}

// Empty reports whether the range matches nothing.
func (r SearchRange) Empty() bool { return r.Hi <= r.Lo }

// Len is the number of matching paths in the range.
func (r SearchRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.Hi - r.Lo
}

// Searcher is the contract the locate pipeline consumes. The pipeline treats
// implementations as black boxes: Find may return an empty range (a normal
// outcome, not an error), Count reports the matching path count of a range,
// and Locate resolves a range to concrete occurrences.
type Searcher interface {
	Find(pattern string) SearchRange
	Count(r SearchRange) int
	Locate(r SearchRange, sortDedup bool) []Occurrence
}

// Index is a file-backed searchable path table: the labels of all indexed
// paths, sorted, each carrying the occurrences of that label in the graph.
// Find answers prefix queries by binary search over the label table.
type Index struct {
	labels []string
	occs   [][]Occurrence
}

var _ Searcher = (*Index)(nil)

// New builds an Index from label -> occurrences. Mostly useful for tests and
// tools that materialize index files; production indexes arrive via Load.
func New(paths map[string][]Occurrence) *Index {
	labels := make([]string, 0, len(paths))
	for l := range paths {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	occs := make([][]Occurrence, len(labels))
	for i, l := range labels {
		occs[i] = paths[l]
	}
	return &Index{labels: labels, occs: occs}
}

// Size is the number of indexed path labels.
func (x *Index) Size() int { return len(x.labels) }

// Find returns the range of path labels having pattern as a prefix, or the
// empty range when none does.
func (x *Index) Find(pattern string) SearchRange {
	if pattern == "" {
		return SearchRange{}
	}
	lo := sort.SearchStrings(x.labels, pattern)
	n := sort.Search(len(x.labels)-lo, func(j int) bool {
		return !strings.HasPrefix(x.labels[lo+j], pattern)
	})
	return SearchRange{Lo: lo, Hi: lo + n}
}

// Count is the number of paths matching the range.
func (x *Index) Count(r SearchRange) int {
	return r.Len()
}

// Locate resolves a range to the occurrences of every path it covers, in
// table order. With sortDedup the result is ordered by (Node, Offset) and
// duplicate locations are collapsed.
func (x *Index) Locate(r SearchRange, sortDedup bool) []Occurrence {
	if r.Empty() || r.Lo < 0 || r.Hi > len(x.labels) {
		return nil
	}
	var out []Occurrence
	for i := r.Lo; i < r.Hi; i++ {
		out = append(out, x.occs[i]...)
	}
	if sortDedup && len(out) > 1 {
		sort.Slice(out, func(a, b int) bool {
			if out[a].Node != out[b].Node {
				return out[a].Node < out[b].Node
			}
			return out[a].Offset < out[b].Offset
		})
		dst := out[:1]
		for _, o := range out[1:] {
			if o != dst[len(dst)-1] {
				dst = append(dst, o)
			}
		}
		out = dst
	}
	return out
}

// Serialized form: a short magic+version header followed by a gob payload.
const fileMagic = "SLIX\x01"

// ErrFormat reports a file that is not a seedloc index.
var ErrFormat = errors.New("not a seedloc index file")

type payload struct {
	Labels []string
	Occs   [][]Occurrence
}

// Load deserializes an index. Any malformed or truncated input is an error;
// the caller is expected to treat it as fatal.
func Load(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)
	hdr := make([]byte, len(fileMagic))
	if _, err := io.ReadFull(br, hdr); err != nil {
		return nil, fmt.Errorf("read index header: %w", err)
	}
	if string(hdr) != fileMagic {
		return nil, ErrFormat
	}
	var p payload
	if err := gob.NewDecoder(br).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if len(p.Labels) != len(p.Occs) || !sort.StringsAreSorted(p.Labels) {
		return nil, fmt.Errorf("%w: corrupt path table", ErrFormat)
	}
	return &Index{labels: p.Labels, occs: p.Occs}, nil
}

// LoadFile opens and deserializes an index file.
func LoadFile(path string) (*Index, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open index %q: %w", path, err)
	}
	defer func() { _ = fh.Close() }()
	x, err := Load(fh)
	if err != nil {
		return nil, fmt.Errorf("load index %q: %w", path, err)
	}
	return x, nil
}

// Write serializes the index in the format Load reads.
func (x *Index) Write(w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(fileMagic); err != nil {
		return err
	}
	if err := gob.NewEncoder(bw).Encode(payload{Labels: x.labels, Occs: x.occs}); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	return bw.Flush()
}

// WriteFile serializes the index to path.
func (x *Index) WriteFile(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create index %q: %w", path, err)
	}
	if err := x.Write(fh); err != nil {
		_ = fh.Close()
		return err
	}
	return fh.Close()
}
