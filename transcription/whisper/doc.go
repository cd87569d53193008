// Package whisper implements offline speech-to-text on top of whisper.cpp.
//
// A Service holds at most one loaded model at a time. Loading replaces the
// model atomically; each transcription takes a counted reference to the
// current model and creates its own inference state, so concurrent requests
// never share mutable buffers and a replaced model is freed only after the
// last request using it finishes.
//
// Input audio must be a WAV file with 16 kHz mono 16-bit integer PCM.
//
// The real engine is compiled only with the whisper_cpp build tag; without
// it DefaultLoader returns ErrEngineUnavailable.
package whisper
