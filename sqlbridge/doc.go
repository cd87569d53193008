// Package sqlbridge runs statements against embedded SQLite stores on behalf
// of an untyped JSON caller.
//
// Request parameters arrive as decoded JSON and are coerced into the store's
// five native kinds (null, integer, real, text, blob) before binding. Result
// rows come back as maps keyed by column name with values converted to their
// JSON-facing form. Arrays made only of numbers are read as binary payloads
// and stored as blobs; every other array and every object is stored as its
// canonical JSON text.
//
// Stores are named either by a logical locator ("sqlite:notes.db"), resolved
// under the application's private data directory, or by a literal path.
// No connection is held between calls.
package sqlbridge
