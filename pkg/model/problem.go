package model

import (
	"encoding/json"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

var ErrInvalidSize = errors.New("set size must be positive")

// Problem fully determines the generated formula: the number of words to design and whether they must be totally ordered
type Problem struct {
	Size         int
	EnforceOrder bool
}

type RawProblem struct {
	Size         int  `mapstructure:"size"`
	EnforceOrder bool `mapstructure:"enforceOrder"`
}

func NewProblem(size int, enforceOrder bool) (Problem, error) {
	problem := Problem{Size: size, EnforceOrder: enforceOrder}
	if err := problem.validate(); err != nil {
		return Problem{}, err
	}
	return problem, nil
}

func (problem Problem) validate() error {
	if problem.Size <= 0 {
		return errors.Wrapf(ErrInvalidSize, "got %d", problem.Size)
	}
	return nil
}

// ProblemFromJson reads a problem from a JSON file of the form {"size": 25, "enforceOrder": true}
func ProblemFromJson(file string) (Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, errors.Wrapf(err, "cannot read problem file %q", file)
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Problem{}, errors.Wrapf(err, "cannot parse problem file %q", file)
	}

	var rawProblem RawProblem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		ErrorUnused: true,
		Result:      &rawProblem,
	})
	if err != nil {
		return Problem{}, errors.Wrap(err, "cannot build problem decoder")
	}
	if err := decoder.Decode(inputJson); err != nil {
		return Problem{}, errors.Wrapf(err, "cannot decode problem file %q", file)
	}

	return NewProblem(rawProblem.Size, rawProblem.EnforceOrder)
}
