// Package transcription defines the provider interface and common types
// for speech-to-text backends.
//
// # Backends
//
//   - transcription/whisper: offline whisper.cpp engine with a single
//     process-wide model
//
// # Usage
//
//	var p transcription.Provider = whisper.NewService(cfg, whisper.DefaultLoader, log)
//	result, err := p.Transcribe(ctx, transcription.TranscriptionRequest{AudioPath: "clip.wav"})
package transcription
