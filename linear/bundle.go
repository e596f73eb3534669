package linear

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/whitebox/textvec"
	"github.com/katalvlaran/whitebox/vocab"
)

// ErrInvalidBundle is returned for unreadable or inconsistent model bundles.
var ErrInvalidBundle = errors.New("linear: invalid model bundle")

// bundleFile is the on-disk YAML layout. Unknown keys are rejected.
//
//	classes: [neg, pos]
//	positive_class: pos
//	vocabulary: [bad, good, movie, great]
//	idf: [1.4, 1.4, 1.0, 1.4]
//	sublinear_tf: false
//	coef:
//	  - [-1.2, 0.8, 0.0, 1.5]
//	intercept: [0.1]
type bundleFile struct {
	Classes       []string    `yaml:"classes"`
	PositiveClass string      `yaml:"positive_class"`
	Vocabulary    []string    `yaml:"vocabulary"`
	IDF           []float64   `yaml:"idf"`
	SublinearTF   bool        `yaml:"sublinear_tf"`
	Coef          [][]float64 `yaml:"coef"`
	Intercept     []float64   `yaml:"intercept"`
}

// Bundle is a pre-trained model together with the vectorizer it expects.
type Bundle struct {
	Model         *Model
	Vectorizer    *textvec.Vectorizer
	Vocabulary    *vocab.Vocabulary
	PositiveClass int // index into Model.Classes()
}

// Load reads a YAML model bundle from path.
func Load(path string) (*Bundle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("linear: open bundle: %w", err)
	}
	defer f.Close()

	b, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return b, nil
}

// Decode reads a YAML model bundle from r.
// Implementation:
//   - Stage 1: strict YAML decoding (known fields only).
//   - Stage 2: vocabulary + IDF → textvec.Vectorizer.
//   - Stage 3: coefficients + intercept → Model; the coefficient width must
//     equal the vocabulary size.
//   - Stage 4: resolve the positive class (defaults to the second class).
//
// Errors: ErrInvalidBundle wrapping the specific cause.
func Decode(r io.Reader) (*Bundle, error) {
	// Stage 1: strict decoding.
	var bf bundleFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&bf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	// Stage 2: vocabulary and vectorizer.
	v, err := vocab.New(bf.Vocabulary)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}
	var vopts []textvec.Option
	if bf.SublinearTF {
		vopts = append(vopts, textvec.WithSublinearTF())
	}
	vz, err := textvec.NewFromVocabulary(v, bf.IDF, vopts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	// Stage 3: model.
	if len(bf.Coef) == 0 {
		return nil, fmt.Errorf("%w: no coefficients", ErrInvalidBundle)
	}
	flat := make([]float64, 0, len(bf.Coef)*v.Len())
	for i, row := range bf.Coef {
		if len(row) != v.Len() {
			return nil, fmt.Errorf("%w: coef row %d has %d values for %d terms",
				ErrInvalidBundle, i, len(row), v.Len())
		}
		flat = append(flat, row...)
	}
	if v.Len() == 0 {
		return nil, fmt.Errorf("%w: empty vocabulary", ErrInvalidBundle)
	}
	m, err := New(bf.Classes, mat.NewDense(len(bf.Coef), v.Len(), flat), bf.Intercept)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBundle, err)
	}

	// Stage 4: positive class.
	pos := 1
	if bf.PositiveClass != "" {
		pos = -1
		for c, name := range bf.Classes {
			if name == bf.PositiveClass {
				pos = c
				break
			}
		}
		if pos < 0 {
			return nil, fmt.Errorf("%w: positive class %q not in %v", ErrInvalidBundle, bf.PositiveClass, bf.Classes)
		}
	}

	return &Bundle{Model: m, Vectorizer: vz, Vocabulary: v, PositiveClass: pos}, nil
}
