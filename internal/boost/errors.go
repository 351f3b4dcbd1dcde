package boost

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var emptyTrainingDataError = &tracer.Error{
	Kind: "emptyTrainingDataError",
	Desc: "Training requires at least one sample and one feature column.",
}

func IsEmptyTrainingData(err error) bool {
	return errors.Is(err, emptyTrainingDataError)
}

var inconsistentShapeError = &tracer.Error{
	Kind: "inconsistentShapeError",
	Desc: "All feature rows must have the same width and match the label count.",
}

func IsInconsistentShape(err error) bool {
	return errors.Is(err, inconsistentShapeError)
}

var invalidObjectiveError = &tracer.Error{
	Kind: "invalidObjectiveError",
	Desc: "The configured objective is not supported by this booster.",
}

func IsInvalidObjective(err error) bool {
	return errors.Is(err, invalidObjectiveError)
}
