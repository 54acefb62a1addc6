package source

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/v2"

	"github.com/okian/tally/internal/domain/model"
)

// recordsKey is the top-level key holding the record list:
//
//	records:
//	  - {name: Hasan, subject: Jenkins, number: 45}
//
// JSON documents use the same shape since the YAML parser accepts JSON.
const recordsKey = "records"

// maxExactScore is the largest magnitude a float64 holds without losing
// integer precision.
const maxExactScore = 1 << 53

// recordDoc is the decoded shape of one list entry. Number is decoded as a
// float so fractional input is rejected instead of silently truncated, and
// through a pointer so an absent or null number is told apart from 0.
type recordDoc struct {
	Name    string   `koanf:"name"`
	Subject string   `koanf:"subject"`
	Number  *float64 `koanf:"number"`
}

// rawBytes adapts bytes that were already read to koanf.Provider.
type rawBytes []byte

func (b rawBytes) ReadBytes() ([]byte, error) { return b, nil }

func (b rawBytes) Read() (map[string]interface{}, error) {
	return nil, errors.New("source: raw bytes provider does not support Read")
}

// decode parses a YAML or JSON document into records.
func decode(b []byte) ([]model.ScoreRecord, error) {
	k := koanf.New(".")
	if err := k.Load(rawBytes(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if !k.Exists(recordsKey) {
		return []model.ScoreRecord{}, nil
	}

	// Strict decoding: booleans and strings are not coerced into numbers.
	var docs []recordDoc
	conf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			Result:           &docs,
			WeaklyTypedInput: false,
		},
	}
	if err := k.UnmarshalWithConf(recordsKey, &docs, conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	out := make([]model.ScoreRecord, len(docs))
	for i, d := range docs {
		n, err := score(d.Number)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, &model.RecordError{Index: i, Field: "number", Err: err})
		}
		out[i] = model.ScoreRecord{
			Name:    d.Name,
			Subject: model.Subject(d.Subject),
			Number:  n,
		}
	}
	return out, nil
}

func score(v *float64) (int, error) {
	switch {
	case v == nil:
		return 0, model.ErrMissingScore
	case math.IsNaN(*v) || math.Trunc(*v) != *v || math.Abs(*v) > maxExactScore:
		return 0, fmt.Errorf("%w: %v", model.ErrNonIntegerScore, *v)
	}
	return int(*v), nil
}
