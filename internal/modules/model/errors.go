// README: Sentinel errors for the model wrappers and the artifact store.
package model

import "errors"

var (
	ErrNotTrained    = errors.New("model not trained")
	ErrModelNotFound = errors.New("model artifact not found")
	ErrCorruptModel  = errors.New("model artifact corrupt")
)
