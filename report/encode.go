package report

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrMalformed is returned when a decoded Struct does not have the Summary shape.
var ErrMalformed = errors.New("report: malformed summary")

// Summary is the exportable result of one explanation run.
type Summary struct {
	Classes   []string
	Documents []DocumentRow
	Patterns  []PatternRow
}

func stringList(xs []string) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}

	return out
}

func floatList(xs []float64) []interface{} {
	out := make([]interface{}, len(xs))
	for i, x := range xs {
		out[i] = x
	}

	return out
}

// Encode converts s to a protobuf Struct:
//
//	{classes: [...], documents: [{id, label, predicted, sign, tokens, scores}],
//	 patterns: [{class, terms, weights}]}
func Encode(s Summary) (*structpb.Struct, error) {
	docs := make([]interface{}, len(s.Documents))
	for i, d := range s.Documents {
		docs[i] = map[string]interface{}{
			"id":        d.ID,
			"label":     d.Label,
			"predicted": d.Predicted,
			"sign":      float64(d.Sign),
			"tokens":    stringList(d.Tokens),
			"scores":    floatList(d.Scores),
		}
	}
	pats := make([]interface{}, len(s.Patterns))
	for i, p := range s.Patterns {
		pats[i] = map[string]interface{}{
			"class":   p.Class,
			"terms":   stringList(p.Terms),
			"weights": floatList(p.Weights),
		}
	}
	st, err := structpb.NewStruct(map[string]interface{}{
		"classes":   stringList(s.Classes),
		"documents": docs,
		"patterns":  pats,
	})
	if err != nil {
		return nil, fmt.Errorf("report: encode: %w", err)
	}

	return st, nil
}

// MarshalProto returns the binary protobuf encoding of s.
func MarshalProto(s Summary) ([]byte, error) {
	st, err := Encode(s)
	if err != nil {
		return nil, err
	}

	return proto.Marshal(st)
}

// MarshalJSON returns the canonical protobuf JSON encoding of s.
func MarshalJSON(s Summary, indent bool) ([]byte, error) {
	st, err := Encode(s)
	if err != nil {
		return nil, err
	}
	opts := protojson.MarshalOptions{}
	if indent {
		opts.Indent = "  "
	}

	return opts.Marshal(st)
}

// UnmarshalProto decodes the output of MarshalProto.
func UnmarshalProto(b []byte) (Summary, error) {
	var st structpb.Struct
	if err := proto.Unmarshal(b, &st); err != nil {
		return Summary{}, fmt.Errorf("report: unmarshal: %w", err)
	}

	return Decode(&st)
}

// Decode converts a Struct produced by Encode back into a Summary.
func Decode(st *structpb.Struct) (Summary, error) {
	m := st.AsMap()
	var s Summary
	var err error
	if s.Classes, err = toStrings(m["classes"]); err != nil {
		return Summary{}, err
	}

	docs, ok := m["documents"].([]interface{})
	if !ok {
		return Summary{}, fmt.Errorf("%w: documents", ErrMalformed)
	}
	for _, raw := range docs {
		d, ok := raw.(map[string]interface{})
		if !ok {
			return Summary{}, fmt.Errorf("%w: document entry", ErrMalformed)
		}
		row := DocumentRow{}
		row.ID, _ = d["id"].(string)
		row.Label, _ = d["label"].(string)
		row.Predicted, _ = d["predicted"].(string)
		sign, _ := d["sign"].(float64)
		row.Sign = int(sign)
		if row.Tokens, err = toStrings(d["tokens"]); err != nil {
			return Summary{}, err
		}
		if row.Scores, err = toFloats(d["scores"]); err != nil {
			return Summary{}, err
		}
		s.Documents = append(s.Documents, row)
	}

	pats, ok := m["patterns"].([]interface{})
	if !ok {
		return Summary{}, fmt.Errorf("%w: patterns", ErrMalformed)
	}
	for _, raw := range pats {
		p, ok := raw.(map[string]interface{})
		if !ok {
			return Summary{}, fmt.Errorf("%w: pattern entry", ErrMalformed)
		}
		row := PatternRow{}
		row.Class, _ = p["class"].(string)
		if row.Terms, err = toStrings(p["terms"]); err != nil {
			return Summary{}, err
		}
		if row.Weights, err = toFloats(p["weights"]); err != nil {
			return Summary{}, err
		}
		s.Patterns = append(s.Patterns, row)
	}

	return s, nil
}

func toStrings(v interface{}) ([]string, error) {
	xs, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected list", ErrMalformed)
	}
	out := make([]string, len(xs))
	for i, x := range xs {
		if out[i], ok = x.(string); !ok {
			return nil, fmt.Errorf("%w: expected string", ErrMalformed)
		}
	}

	return out, nil
}

func toFloats(v interface{}) ([]float64, error) {
	xs, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: expected list", ErrMalformed)
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		if out[i], ok = x.(float64); !ok {
			return nil, fmt.Errorf("%w: expected number", ErrMalformed)
		}
	}

	return out, nil
}
