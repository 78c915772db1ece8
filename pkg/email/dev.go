package email

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender implements Sender for local development. It saves messages as
// JSON files instead of delivering them.
type DevSender struct {
	dir string
}

// NewDevSender creates a development sender that saves messages to disk.
// The directory is created on first send if it does not exist.
func NewDevSender(dir string) *DevSender {
	return &DevSender{dir: dir}
}

type devMessage struct {
	Timestamp string `json:"timestamp"`
	Message
}

// Send writes the message to a timestamped file in the configured directory.
func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create directory: %v", ErrSendFailed, err)
	}

	now := time.Now()
	name := fmt.Sprintf("%s_%s.json", now.Format("2006_01_02_150405"), sanitizeFilename(msg.Subject))

	data, err := json.MarshalIndent(devMessage{Timestamp: now.Format(time.RFC3339), Message: msg}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: failed to marshal message: %v", ErrSendFailed, err)
	}

	if err := os.WriteFile(filepath.Join(d.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write message file: %v", ErrSendFailed, err)
	}
	return nil
}

var sanitizeRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizeFilename converts a subject into a safe filename.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = sanitizeRegex.ReplaceAllString(s, "")

	const maxLength = 100
	if len(s) > maxLength {
		s = s[:maxLength]
	}
	if s == "" {
		s = "message"
	}
	return strings.ToLower(s)
}
