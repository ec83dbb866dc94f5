package assistant

import (
	"encoding/json"
	"fmt"
	"os"
)

// LoadResume reads the static resume document that grounds every assistant
// prompt. The content is validated as JSON and re-indented so the prompt
// stays readable regardless of how the file was saved.
func LoadResume(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read resume %s: %w", path, err)
	}
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return "", fmt.Errorf("parse resume %s: %w", path, err)
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format resume: %w", err)
	}
	return string(out), nil
}
