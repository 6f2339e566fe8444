package artifact

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/sbolgraph/pkg/metrics"
)

var payload = []byte(`<?xml version="1.0" encoding="UTF-8"?><rdf:RDF/>` + "\n")

func TestFileSink_WriteAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rdf")
	sink, err := NewFileSink(path, Options{})
	require.NoError(t, err)

	info, err := sink.Write(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, path, info.Destination)
	assert.Equal(t, int64(len(payload)), info.Bytes)
	assert.Equal(t, Digest(payload), info.Digest)
	assert.Len(t, info.Digest, 64)
	assert.False(t, info.Compressed)

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), st.Mode().Perm())
}

func TestFileSink_Compressed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.rdf.sz")
	sink, err := NewFileSink(path, Options{})
	require.NoError(t, err)

	info, err := sink.Write(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, info.Compressed)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, payload, raw)
	assert.Equal(t, Digest(raw), info.Digest, "digest covers the stored bytes")

	got, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFileSink_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "model.rdf")
	require.NoError(t, os.WriteFile(path, []byte("old contents that are longer"), 0o600))

	sink, err := NewFileSink(path, Options{})
	require.NoError(t, err)
	_, err = sink.Write(context.Background(), []byte("new"))
	require.NoError(t, err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestFileSink_Failures(t *testing.T) {
	_, err := NewFileSink("", Options{})
	assert.ErrorIs(t, err, ErrInvalidDestination)

	sink, err := NewFileSink(filepath.Join(t.TempDir(), "missing", "dir", "model.rdf"), Options{})
	require.NoError(t, err)
	_, err = sink.Write(context.Background(), payload)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "model.rdf")
	sink, _ = NewFileSink(path, Options{})
	_, err = sink.Write(ctx, payload)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestReadFile_Errors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.rdf"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.rdf.sz")
	require.NoError(t, os.WriteFile(bad, []byte("not snappy at all"), 0o644))
	_, err = ReadFile(bad)
	assert.Error(t, err)
}

type fakeS3 struct {
	inputs []*s3.PutObjectInput
	bodies [][]byte
	err    error
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.inputs = append(f.inputs, in)
	f.bodies = append(f.bodies, body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Sink_Write(t *testing.T) {
	fake := &fakeS3{}
	reg := metrics.NewRegistry()
	sink, err := NewS3SinkWithClient(fake, "models", "crispr/RepressionModel.rdf", Options{Metrics: reg})
	require.NoError(t, err)
	assert.Equal(t, "s3://models/crispr/RepressionModel.rdf", sink.Destination())

	info, err := sink.Write(context.Background(), payload)
	require.NoError(t, err)
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "models", *in.Bucket)
	assert.Equal(t, "crispr/RepressionModel.rdf", *in.Key)
	assert.Equal(t, "application/rdf+xml", *in.ContentType)
	assert.Equal(t, info.Digest, in.Metadata["blake2b-256"])
	assert.Equal(t, payload, fake.bodies[0])

	families, err := reg.GetPrometheusRegistry().Gather()
	require.NoError(t, err)
	var writes float64
	for _, mf := range families {
		if mf.GetName() == "sbol_artifact_writes_total" {
			for _, m := range mf.GetMetric() {
				writes += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, float64(1), writes)
}

func TestS3Sink_Error(t *testing.T) {
	fake := &fakeS3{err: errors.New("access denied")}
	sink, err := NewS3SinkWithClient(fake, "models", "m.rdf.sz", Options{})
	require.NoError(t, err)

	_, err = sink.Write(context.Background(), payload)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "s3://models/m.rdf.sz")
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := ParseS3URL("s3://bucket/a/b/model.rdf")
	require.NoError(t, err)
	assert.Equal(t, "bucket", bucket)
	assert.Equal(t, "a/b/model.rdf", key)

	for _, bad := range []string{"s3://bucket", "s3:///key", "http://bucket/key"} {
		_, _, err := ParseS3URL(bad)
		assert.ErrorIs(t, err, ErrInvalidDestination, bad)
	}
}

func TestOpenSink(t *testing.T) {
	ctx := context.Background()

	sink, err := OpenSink(ctx, filepath.Join(t.TempDir(), "m.rdf"), Options{})
	require.NoError(t, err)
	assert.Equal(t, "file", sink.Name())

	_, err = OpenSink(ctx, "ftp://host/m.rdf", Options{})
	assert.ErrorIs(t, err, ErrInvalidDestination)

	sink, err = OpenSink(ctx, "s3://bucket/m.rdf", Options{S3: S3Config{
		Region:          "us-east-1",
		Endpoint:        "http://localhost:9000",
		PathStyle:       true,
		AccessKeyID:     "AKIA",
		SecretAccessKey: "SECRET",
	}})
	require.NoError(t, err)
	assert.Equal(t, "s3", sink.Name())
	assert.Equal(t, "s3://bucket/m.rdf", sink.Destination())
}
