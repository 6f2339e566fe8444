package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/sbolgraph/pkg/constraints"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// snapshotCodec encodes a Document's Snapshot with a generic marshaler.
type snapshotCodec struct {
	name      string
	settings  Settings
	validator *constraints.Validator
	marshal   func(sbol.Snapshot) ([]byte, error)
	unmarshal func([]byte, *sbol.Snapshot) error
}

// NewJSON returns a codec writing the snapshot as indented JSON.
func NewJSON(s Settings) Codec {
	return &snapshotCodec{
		name:      "json",
		settings:  s,
		validator: s.validator(),
		marshal: func(snap sbol.Snapshot) ([]byte, error) {
			return json.MarshalIndent(snap, "", "  ")
		},
		unmarshal: func(data []byte, snap *sbol.Snapshot) error {
			dec := json.NewDecoder(bytes.NewReader(data))
			dec.DisallowUnknownFields()
			return dec.Decode(snap)
		},
	}
}

// NewYAML returns a codec writing the snapshot as YAML.
func NewYAML(s Settings) Codec {
	return &snapshotCodec{
		name:      "yaml",
		settings:  s,
		validator: s.validator(),
		marshal: func(snap sbol.Snapshot) ([]byte, error) {
			var buf bytes.Buffer
			enc := yaml.NewEncoder(&buf)
			enc.SetIndent(2)
			if err := enc.Encode(snap); err != nil {
				return nil, err
			}
			if err := enc.Close(); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
		unmarshal: func(data []byte, snap *sbol.Snapshot) error {
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			err := dec.Decode(snap)
			if err == io.EOF {
				return nil
			}
			return err
		},
	}
}

func (c *snapshotCodec) Name() string { return c.name }

func (c *snapshotCodec) Encode(w io.Writer, doc *sbol.Document) error {
	timer := logging.StartTimer(c.settings.logger(), "serialize", logging.Format(c.name))
	if c.validator != nil {
		if err := c.validator.Check(doc); err != nil {
			c.settings.Metrics.RecordSerialization(c.name, "invalid", 0, timer.Elapsed())
			timer.EndError(err)
			return err
		}
	}

	data, err := c.marshal(doc.Snapshot())
	if err == nil {
		_, err = w.Write(data)
	}
	if err != nil {
		err = fmt.Errorf("encode %s: %w", c.name, err)
		c.settings.Metrics.RecordSerialization(c.name, "error", 0, timer.Elapsed())
		timer.EndError(err)
		return err
	}

	c.settings.Metrics.RecordSerialization(c.name, "success", len(data), timer.Elapsed())
	timer.End(logging.Count(doc.Len()), logging.Bytes(len(data)))
	return nil
}

func (c *snapshotCodec) Decode(r io.Reader) (*sbol.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var snap sbol.Snapshot
	if err := c.unmarshal(data, &snap); err != nil {
		c.settings.Metrics.RecordParse(c.name, "error")
		return nil, fmt.Errorf("invalid %s: %w", c.name, err)
	}
	doc, err := sbol.FromSnapshot(snap, c.settings.docOptions()...)
	if err != nil {
		c.settings.Metrics.RecordParse(c.name, "error")
		return nil, err
	}
	c.settings.Metrics.RecordParse(c.name, "success")
	return doc, nil
}
