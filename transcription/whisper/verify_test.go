package whisper

import (
	"os"
	"path/filepath"
	"testing"

	apperrors "github.com/kbukum/nativebridge/errors"
)

func sparseFile(t *testing.T, dir, name string, size int64) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.Truncate(size); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVerifyModelPath(t *testing.T) {
	dir := t.TempDir()
	good := sparseFile(t, dir, "ggml-whisper-base.bin", MinModelSize)
	small := sparseFile(t, dir, "ggml-whisper-tiny.bin", 1024)
	badName := sparseFile(t, dir, "model.bin", MinModelSize)
	noFormat := sparseFile(t, dir, "whisper-base.bin", MinModelSize)
	gguf := sparseFile(t, dir, "Whisper-Large.GGUF", MinModelSize+1)

	tests := []struct {
		name string
		path string
		code apperrors.ErrorCode
	}{
		{"valid", good, ""},
		{"valid gguf uppercase", gguf, ""},
		{"padded", "  " + good + " ", ""},
		{"blank", "   ", apperrors.ErrCodeInvalidArgument},
		{"missing", filepath.Join(dir, "absent-whisper-ggml.bin"), apperrors.ErrCodeIO},
		{"directory", dir, apperrors.ErrCodeInvalidArgument},
		{"too small", small, apperrors.ErrCodeInvalidArgument},
		{"bad name", badName, apperrors.ErrCodeInvalidArgument},
		{"no ggml or gguf", noFormat, apperrors.ErrCodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := VerifyModelPath(tt.path)
			if tt.code == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !apperrors.Is(err, tt.code) {
				t.Errorf("expected %s, got %v", tt.code, err)
			}
		})
	}
}
