// Package server exposes the relational bridge and the transcription
// service over a local HTTP JSON API built on Gin.
//
// Successful responses are wrapped as {"data": ...}; failures as
// {"error": {"code", "message", "details"}} with the HTTP status derived
// from the error code.
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: panics become INTERNAL_ERROR responses
//   - RequestID: request ID generation and propagation into logs
//   - CORS: cross-origin access for the webview frontend
//   - BodySize: request body size limits
//   - Logging: request logging with duration and error code
//
// # Endpoints
//
//   - /sql/load, /sql/select, /sql/execute, /sql/close
//   - /whisper/init, /whisper/transcribe, /whisper/verify
//   - /health, /alive, /ready, /version, /metrics
package server
