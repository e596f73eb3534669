// Package corpus loads labelled review documents from the directory layout
// of the IMDB large movie review dataset:
//
//	<root>/<split>/pos/<id>_<rating>.txt
//	<root>/<split>/neg/<id>_<rating>.txt
//
// Downloading or extracting the dataset is out of scope; the tree must exist.
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Labels in class-index order: neg = 0, pos = 1.
const (
	LabelNeg = "neg"
	LabelPos = "pos"
)

// labelDirs lists the label folders of a split; the position is the label.
var labelDirs = []string{LabelNeg, LabelPos}

// Splits of the IMDB dataset.
const (
	SplitTrain = "train"
	SplitTest  = "test"
)

var (
	// ErrBadLayout is returned when <root>/<split> lacks the pos/neg folders.
	ErrBadLayout = errors.New("corpus: unexpected directory layout")

	// ErrNoDocuments is returned when a split holds no .txt files.
	ErrNoDocuments = errors.New("corpus: no documents")
)

// Document is one review.
type Document struct {
	ID     string // "<split>/<label>/<file stem>"
	Text   string // markup stripped
	Label  int    // 0 = neg, 1 = pos
	Rating int    // star rating from the file name, 0 when absent
	Split  string
}

// LabelName returns "neg" or "pos".
func (d Document) LabelName() string {
	if d.Label == 1 {
		return LabelPos
	}

	return LabelNeg
}

type options struct {
	limit    int
	keepHTML bool
}

// Option configures LoadDir.
type Option func(*options)

// WithLimit reads at most n documents per label (n ≤ 0 means all).
func WithLimit(n int) Option { return func(o *options) { o.limit = n } }

// WithRawHTML keeps review markup instead of stripping it.
func WithRawHTML() Option { return func(o *options) { o.keepHTML = true } }

// LoadDir reads every review of split under root. Documents are returned
// neg first, then pos, each ordered by file name, so results are
// reproducible across runs.
// Errors: ErrBadLayout, ErrNoDocuments, or I/O errors.
func LoadDir(root, split string, opts ...Option) ([]Document, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var docs []Document
	for label, dir := range labelDirs {
		path := filepath.Join(root, split, dir)
		entries, err := os.ReadDir(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: missing %s", ErrBadLayout, path)
			}
			return nil, fmt.Errorf("corpus: %w", err)
		}

		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if !e.IsDir() && strings.HasSuffix(e.Name(), ".txt") {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		if o.limit > 0 && len(names) > o.limit {
			names = names[:o.limit]
		}

		for _, name := range names {
			raw, err := os.ReadFile(filepath.Join(path, name))
			if err != nil {
				return nil, fmt.Errorf("corpus: %w", err)
			}
			text := string(raw)
			if !o.keepHTML {
				text = StripHTML(text)
			}
			stem := strings.TrimSuffix(name, ".txt")
			docs = append(docs, Document{
				ID:     split + "/" + dir + "/" + stem,
				Text:   text,
				Label:  label,
				Rating: ratingOf(stem),
				Split:  split,
			})
		}
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoDocuments, filepath.Join(root, split))
	}

	return docs, nil
}

// ratingOf parses "<id>_<rating>" file stems.
func ratingOf(stem string) int {
	i := strings.LastIndexByte(stem, '_')
	if i < 0 {
		return 0
	}
	r, err := strconv.Atoi(stem[i+1:])
	if err != nil {
		return 0
	}

	return r
}

// Texts projects documents to their texts, preserving order.
func Texts(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Text
	}

	return out
}
