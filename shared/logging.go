package shared

import (
	"bytes"
	"io"
	"log"
	"regexp"
	"strings"
)

// ExtractPackagePath reduces a full source path to a stable, readable package-relative path.
// It strips the module root while preserving subpackages (e.g. storyview/view.go).
// For non-project paths (deps, stdlib), it returns the original string.
func ExtractPackagePath(p string) string {
	norm := strings.ReplaceAll(p, "\\", "/")

	// Dev builds, or builds without -trimpath.
	for _, marker := range []string{"/storyprogress/", "/story-progress/"} {
		if idx := strings.LastIndex(norm, marker); idx >= 0 {
			return norm[idx+len(marker):]
		}
	}

	// Module-relative paths, as produced by -trimpath release builds.
	for _, prefix := range []string{"storyprogress/", "story-progress/"} {
		if strings.HasPrefix(norm, prefix) {
			return norm[len(prefix):]
		}
	}

	for _, prefix := range []string{"main.go", "cmd/", "progress/", "storyview/", "shared/"} {
		if strings.HasPrefix(norm, prefix) {
			return norm
		}
	}

	return p
}

// SetupLogging routes the standard logger through a path shortening writer.
func SetupLogging(w io.Writer) {
	log.SetFlags(log.LstdFlags | log.Llongfile)
	log.SetOutput(NewLogPathShorteningWriter(w))
}

// NewLogPathShorteningWriter returns a writer that rewrites stdlib log output so the
// file path portion is shortened using ExtractPackagePath.
func NewLogPathShorteningWriter(underlying io.Writer) io.Writer {
	return &logPathShorteningWriter{underlying: underlying}
}

type logPathShorteningWriter struct {
	underlying io.Writer
}

func (w *logPathShorteningWriter) Write(p []byte) (int, error) {
	var buf bytes.Buffer
	buf.Grow(len(p))
	for _, line := range bytes.SplitAfter(p, []byte("\n")) {
		buf.Write(shortenLogLine(line))
	}
	if _, err := w.underlying.Write(buf.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}

// sourceLocation matches "<file>.go:<line>:" preceded by whitespace or line start.
var sourceLocation = regexp.MustCompile(`(^|[ \t])([^ \t]+\.go):\d+:`)

func shortenLogLine(line []byte) []byte {
	// Messages may contain their own "x.go:1:" text; the logger's location is
	// the first one since the prefix comes before the message.
	m := sourceLocation.FindSubmatchIndex(line)
	if m == nil {
		return line
	}
	start, end := m[4], m[5]

	orig := string(line[start:end])
	short := ExtractPackagePath(orig)
	if short == orig {
		return line
	}

	out := make([]byte, 0, len(line)-len(orig)+len(short))
	out = append(out, line[:start]...)
	out = append(out, short...)
	out = append(out, line[end:]...)
	return out
}
