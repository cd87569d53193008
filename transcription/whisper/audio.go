package whisper

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	apperrors "github.com/kbukum/nativebridge/errors"
)

const (
	// SampleRate is the only accepted input sample rate.
	SampleRate = 16000
	// Channels is the only accepted channel count.
	Channels = 1
	// BitDepth is the only accepted sample width.
	BitDepth = 16

	wavFormatPCM        = 1
	wavFormatExtensible = 0xFFFE

	maxInt16 = 32767
)

// ReadPCM16Mono reads a 16 kHz mono PCM16 WAV file and returns its samples
// scaled by 1/32767, in order. Any other encoding is rejected with
// INVALID_AUDIO_FORMAT naming the offending value.
func ReadPCM16Mono(path string) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.AudioRead("cannot open audio file", err)
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, apperrors.AudioRead("cannot parse audio container", err)
	}
	if d.SampleRate == 0 && d.NumChans == 0 {
		return nil, apperrors.AudioRead("cannot parse audio container", fmt.Errorf("no format chunk in %s", path))
	}

	if err := validateFormat(int(d.NumChans), int(d.SampleRate), int(d.BitDepth), int(d.WavAudioFormat)); err != nil {
		return nil, err
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, apperrors.AudioRead("cannot read audio samples", err)
	}

	samples := make([]float32, len(buf.Data))
	for i, s := range buf.Data {
		samples[i] = float32(s) / maxInt16
	}
	return samples, nil
}

func validateFormat(channels, sampleRate, bitDepth, format int) error {
	if channels != Channels {
		return apperrors.InvalidAudioFormat("channels", channels,
			fmt.Sprintf("audio has %d channels, expected mono (1 channel)", channels))
	}
	if sampleRate != SampleRate {
		return apperrors.InvalidAudioFormat("sample_rate", sampleRate,
			fmt.Sprintf("audio has %d Hz, expected 16000 Hz", sampleRate))
	}
	if bitDepth != BitDepth {
		return apperrors.InvalidAudioFormat("bit_depth", bitDepth,
			fmt.Sprintf("audio has %d-bit samples, expected 16-bit PCM", bitDepth))
	}
	if format != wavFormatPCM && format != wavFormatExtensible {
		return apperrors.InvalidAudioFormat("format", format,
			fmt.Sprintf("audio sample format %d is not integer PCM", format))
	}
	return nil
}
