package audit

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// ErrTampered is returned by Verify when the hash chain does not hold.
var ErrTampered = errors.New("audit journal tampered")

// Entry is one journal line: an event chained to its predecessor.
type Entry struct {
	*Event
	PreviousHash string `json:"previous_hash,omitempty"`
	EventHash    string `json:"event_hash"`
}

// Journal appends events to a JSON Lines file. Each line carries the hash of
// the line before it, so edits and deletions are detectable.
type Journal struct {
	path       string
	file       *os.File
	writer     *bufio.Writer
	lastHash   string
	eventCount int64
	mu         sync.Mutex
}

// OpenJournal opens or creates the journal at path and continues its chain.
func OpenJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	count, last, err := Verify(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return &Journal{
		path:       path,
		file:       file,
		writer:     bufio.NewWriter(file),
		lastHash:   last,
		eventCount: int64(count),
	}, nil
}

// Log appends event and syncs it to disk.
func (j *Journal) Log(event *Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	entry := Entry{Event: event, PreviousHash: j.lastHash}
	hash, err := entry.hash()
	if err != nil {
		return err
	}
	entry.EventHash = hash

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if _, err := j.writer.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	if err := j.writer.Flush(); err != nil {
		return fmt.Errorf("flush event: %w", err)
	}
	if err := j.file.Sync(); err != nil {
		return fmt.Errorf("sync journal: %w", err)
	}

	j.lastHash = hash
	j.eventCount++
	return nil
}

// GetEventCount returns the number of entries in the journal.
func (j *Journal) GetEventCount() int64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.eventCount
}

// Path returns the journal file path.
func (j *Journal) Path() string { return j.path }

// Close flushes and closes the journal file.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	flushErr := j.writer.Flush()
	closeErr := j.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// hash is computed over the entry with EventHash cleared.
func (e Entry) hash() (string, error) {
	e.EventHash = ""
	data, err := json.Marshal(e)
	if err != nil {
		return "", fmt.Errorf("marshal event: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// Verify checks the hash chain of the journal at path. It returns the number
// of entries and the hash of the last one.
func Verify(path string) (_ int, _ string, retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, "", err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close journal: %w", closeErr)
		}
	}()
	return VerifyReader(file)
}

// VerifyReader is Verify over an open stream.
func VerifyReader(r io.Reader) (int, string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)

	var previous string
	line := 0
	for scanner.Scan() {
		line++
		var entry Entry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			return line - 1, previous, fmt.Errorf("line %d: parse event: %w", line, err)
		}
		if entry.Event == nil {
			return line - 1, previous, fmt.Errorf("%w: line %d: empty event", ErrTampered, line)
		}
		if entry.PreviousHash != previous {
			return line - 1, previous, fmt.Errorf("%w: line %d: chain broken (expected previous hash %q, got %q)",
				ErrTampered, line, previous, entry.PreviousHash)
		}
		want, err := entry.hash()
		if err != nil {
			return line - 1, previous, err
		}
		if want != entry.EventHash {
			return line - 1, previous, fmt.Errorf("%w: line %d: event hash mismatch", ErrTampered, line)
		}
		previous = entry.EventHash
	}
	if err := scanner.Err(); err != nil {
		return line, previous, fmt.Errorf("read journal: %w", err)
	}
	return line, previous, nil
}
