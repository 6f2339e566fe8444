package audit

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewEvent(t *testing.T) {
	ok := NewEvent("run-1", ActionBuild, ResourceDocument, "http://example.org/", nil)
	if ok.Status != StatusSuccess || ok.ErrorMessage != "" {
		t.Errorf("success event = %+v", ok)
	}
	if ok.ID == "" || ok.Timestamp.IsZero() {
		t.Error("ID and Timestamp must be set")
	}

	failed := NewEvent("run-1", ActionWrite, ResourceArtifact, "out.rdf", errors.New("disk full"))
	if failed.Status != StatusFailure || failed.ErrorMessage != "disk full" {
		t.Errorf("failure event = %+v", failed)
	}
	if !strings.Contains(failed.String(), "write artifact out.rdf: failure (disk full)") {
		t.Errorf("String() = %q", failed.String())
	}

	failed.With("bytes", 12).With("format", "rdfxml")
	if len(failed.Metadata) != 2 {
		t.Errorf("Metadata = %v", failed.Metadata)
	}
}

func TestEvent_MasksCredentialMetadata(t *testing.T) {
	e := NewEvent("run-1", ActionWrite, ResourceArtifact, "s3://models/model.rdf", nil)
	e.With("bucket", "models").
		With("session_token", "FwoGZXIvYXdzEBYaDH").
		WithMetadata(map[string]any{
			"entities": 107,
			"s3": map[string]any{
				"region":            "eu-west-1",
				"secret_access_key": "wJalrXUtnFEMIK7MDENG",
			},
		})

	if e.Metadata["bucket"] != "models" || e.Metadata["entities"] != 107 {
		t.Errorf("plain metadata changed: %v", e.Metadata)
	}
	if got := e.Metadata["session_token"]; got != "Fw**************DH" {
		t.Errorf("session_token = %v, want it masked", got)
	}
	s3 := e.Metadata["s3"].(map[string]any)
	if s3["region"] != "eu-west-1" {
		t.Errorf("region = %v", s3["region"])
	}
	if got := s3["secret_access_key"]; got == "wJalrXUtnFEMIK7MDENG" || !strings.HasPrefix(got.(string), "wJ**") {
		t.Errorf("secret_access_key = %v, want it masked", got)
	}

	if e.WithMetadata(nil) != e || len(e.Metadata) != 4 {
		t.Errorf("WithMetadata(nil) changed the event: %v", e.Metadata)
	}
}

func TestAuditLogger_CircularBuffer(t *testing.T) {
	l := NewAuditLogger(3)
	for i := 0; i < 5; i++ {
		action := ActionRead
		if i%2 == 0 {
			action = ActionWrite
		}
		if err := l.Log(&Event{RunID: "r", Action: action, ResourceID: string(rune('a' + i))}); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	if got := l.GetEventCount(); got != 5 {
		t.Errorf("GetEventCount() = %d, want 5", got)
	}
	events := l.GetEvents(nil)
	if len(events) != 3 {
		t.Fatalf("GetEvents() returned %d events, want 3", len(events))
	}
	var ids []string
	for _, e := range events {
		ids = append(ids, e.ResourceID)
		if e.ID == "" {
			t.Error("Log must assign an ID")
		}
	}
	if strings.Join(ids, "") != "cde" {
		t.Errorf("buffered events = %v, want oldest-first c,d,e", ids)
	}

	writes := l.GetEvents(&Filter{Action: ActionWrite})
	if len(writes) != 2 {
		t.Errorf("filtered events = %d, want 2", len(writes))
	}
}

func TestJournal_AppendAndVerify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal", "sbolgen.jsonl")

	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	if err := j.Log(NewEvent("r1", ActionBuild, ResourceDocument, "ns", nil).With("entities", 107)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := j.Log(NewEvent("r1", ActionWrite, ResourceArtifact, "out.rdf", nil).With("digest", "abc")); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening continues the existing chain.
	j, err = OpenJournal(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if j.GetEventCount() != 2 {
		t.Errorf("GetEventCount() after reopen = %d, want 2", j.GetEventCount())
	}
	if err := j.Log(NewEvent("r2", ActionValidate, ResourceDocument, "out.rdf", errors.New("2 violations"))); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	n, last, err := Verify(path)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if n != 3 || last == "" {
		t.Errorf("Verify() = %d, %q", n, last)
	}
}

func TestJournal_DetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sbolgen.jsonl")
	j, err := OpenJournal(path)
	if err != nil {
		t.Fatalf("OpenJournal: %v", err)
	}
	for _, id := range []string{"a.rdf", "b.rdf", "c.rdf"} {
		if err := j.Log(NewEvent("r", ActionWrite, ResourceArtifact, id, nil)); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")

	tests := []struct {
		name  string
		lines []string
	}{
		{"edited", []string{lines[0], strings.Replace(lines[1], "b.rdf", "x.rdf", 1), lines[2]}},
		{"deleted", []string{lines[0], lines[2]}},
		{"reordered", []string{lines[1], lines[0], lines[2]}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := VerifyReader(strings.NewReader(strings.Join(tt.lines, "\n")))
			if !errors.Is(err, ErrTampered) {
				t.Errorf("VerifyReader() error = %v, want ErrTampered", err)
			}
		})
	}

	if err := os.WriteFile(path, []byte(strings.Join(tests[0].lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenJournal(path); !errors.Is(err, ErrTampered) {
		t.Errorf("OpenJournal on a tampered file: error = %v, want ErrTampered", err)
	}
}

func TestMulti(t *testing.T) {
	a, b := NewAuditLogger(4), NewAuditLogger(4)
	m := Multi{a, b}
	if err := m.Log(NewEvent("r", ActionConvert, ResourceArtifact, "x", nil)); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if a.GetEventCount() != 1 || b.GetEventCount() != 1 || m.GetEventCount() != 1 {
		t.Error("event not fanned out to every logger")
	}
}
