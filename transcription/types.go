package transcription

// TranscriptionRequest holds parameters for a transcription call.
type TranscriptionRequest struct {
	// AudioPath is the path to the WAV file to transcribe.
	AudioPath string `json:"path"`
	// Language is an optional language hint (e.g. "en" or "English").
	Language string `json:"lang,omitempty"`
}

// TranscriptionResponse holds the result of a transcription call.
type TranscriptionResponse struct {
	// Text is the full transcription text.
	Text string `json:"text"`
	// Segments contains time-aligned transcript segments in order.
	Segments []Segment `json:"segments"`
	// Duration is the audio duration in seconds.
	Duration float64 `json:"duration"`
	// Language is the effective language code used for decoding.
	Language string `json:"language"`
}

// Segment represents a time-aligned portion of a transcript.
type Segment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the trimmed text for this segment.
	Text string `json:"text"`
}
