// Package resilience re-runs operations that failed transiently, such as a
// store file locked by another writer, with exponential backoff and jitter.
package resilience
