package whisper

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/kbukum/nativebridge/errors"
)

// MinModelSize is the smallest file accepted as a model by VerifyModelPath.
const MinModelSize = 40 * 1024 * 1024

// VerifyModelPath runs cheap sanity checks on a model file before loading.
// It rejects blank paths, missing or non-regular files, files under
// MinModelSize, and names that do not look like a ggml/gguf whisper model.
func VerifyModelPath(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return apperrors.InvalidArgument("model_path", "model path must not be empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return apperrors.IO("model path is not reachable", err).WithDetail("model_path", path)
	}
	if !info.Mode().IsRegular() {
		return apperrors.InvalidArgument("model_path", "model path does not point to a file")
	}
	if info.Size() < MinModelSize {
		return apperrors.InvalidArgument("model_path",
			fmt.Sprintf("model file is too small (%d bytes); use a ggml/gguf whisper model", info.Size()))
	}
	if !looksLikeWhisperModel(filepath.Base(path)) {
		return apperrors.InvalidArgument("model_path", "file name does not look like a whisper ggml/gguf model")
	}
	return nil
}

func looksLikeWhisperModel(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "whisper") &&
		(strings.Contains(lower, "ggml") || strings.Contains(lower, "gguf"))
}
