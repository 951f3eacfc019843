package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one parsed log line.
type Entry struct {
	Time    string // "2006-01-02 15:04:05"; empty for continuation lines
	Level   log.Level
	Message string // everything after the level, key=value pairs included
	Raw     string
}

// HasLevel reports whether the line carried a level token.
func (e Entry) HasLevel() bool {
	return e.Time != ""
}

// Parse splits a text-formatted log line into its parts. Lines that do not
// start with a date, time and level are returned with only Raw set.
func Parse(line string) Entry {
	entry := Entry{Raw: line, Message: line}
	fields := strings.SplitN(line, " ", 4)
	if len(fields) < 3 || !looksLikeDate(fields[0]) || !looksLikeClock(fields[1]) {
		return entry
	}
	level, ok := parseLevel(fields[2])
	if !ok {
		return entry
	}
	entry.Time = fields[0] + " " + fields[1]
	entry.Level = level
	entry.Message = ""
	if len(fields) == 4 {
		entry.Message = fields[3]
	}
	return entry
}

// Filter keeps lines at or above minLevel. Continuation lines follow the
// entry they belong to.
func Filter(lines []string, minLevel log.Level) []string {
	out := make([]string, 0, len(lines))
	keep := true
	for _, line := range lines {
		entry := Parse(line)
		if entry.HasLevel() {
			keep = entry.Level >= minLevel
		}
		if keep {
			out = append(out, line)
		}
	}
	return out
}

// parseLevel accepts both the full level names and the four-letter forms the
// text formatter writes.
func parseLevel(token string) (log.Level, bool) {
	switch strings.ToUpper(token) {
	case "DEBU", "DEBUG":
		return log.DebugLevel, true
	case "INFO":
		return log.InfoLevel, true
	case "WARN", "WARNING":
		return log.WarnLevel, true
	case "ERRO", "ERROR":
		return log.ErrorLevel, true
	case "FATA", "FATAL":
		return log.FatalLevel, true
	default:
		return 0, false
	}
}

func looksLikeDate(s string) bool {
	return len(s) == 10 && s[4] == '-' && s[7] == '-' && digitsOnly(s[:4]+s[5:7]+s[8:])
}

func looksLikeClock(s string) bool {
	return len(s) == 8 && s[2] == ':' && s[5] == ':' && digitsOnly(s[:2]+s[3:5]+s[6:])
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
