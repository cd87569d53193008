//go:build !whisper_cpp

package whisper

import "errors"

// ErrEngineUnavailable is returned when the binary was built without whisper.cpp.
var ErrEngineUnavailable = errors.New("whisper.cpp engine not compiled in (build with -tags whisper_cpp)")

// DefaultLoader reports that no engine is available.
var DefaultLoader Loader = func(string) (Model, error) { return nil, ErrEngineUnavailable }

// EngineName identifies the compiled-in engine.
const EngineName = "stub"
