// Package artifact writes encoded documents to their destination: a local
// file (replaced atomically) or an S3 object. Outputs ending in ".sz" are
// snappy-compressed.
package artifact

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/crypto/blake2b"

	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
)

// CompressedSuffix marks snappy-compressed artifacts.
const CompressedSuffix = ".sz"

// ErrInvalidDestination is returned for destinations no sink can handle.
var ErrInvalidDestination = errors.New("invalid artifact destination")

// Info describes a written artifact.
type Info struct {
	Destination string // file path or s3:// URL
	Bytes       int64  // bytes stored, after compression
	Digest      string // hex BLAKE2b-256 of the stored bytes
	Compressed  bool
}

// Sink stores one artifact.
type Sink interface {
	// Name identifies the sink type in logs and metrics ("file", "s3").
	Name() string
	// Destination is where Write stores data.
	Destination() string
	// Write stores data, replacing any previous artifact at the destination.
	Write(ctx context.Context, data []byte) (Info, error)
}

// Options are shared by every sink.
type Options struct {
	// Compress forces snappy compression even without a ".sz" suffix.
	Compress bool
	S3       S3Config
	Logger   logging.Logger
	Metrics  *metrics.Registry
}

func (o Options) logger() logging.Logger {
	if o.Logger == nil {
		return logging.NewNopLogger()
	}
	return o.Logger
}

// Digest returns the hex BLAKE2b-256 digest of data.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// IsCompressed reports whether dest names a snappy-compressed artifact.
func IsCompressed(dest string) bool {
	return strings.HasSuffix(dest, CompressedSuffix)
}

// prepare compresses data when asked to and builds the Info for it.
func prepare(dest string, data []byte, compress bool) ([]byte, Info) {
	compress = compress || IsCompressed(dest)
	if compress {
		data = snappy.Encode(nil, data)
	}
	return data, Info{
		Destination: dest,
		Bytes:       int64(len(data)),
		Digest:      Digest(data),
		Compressed:  compress,
	}
}

// record logs and counts one write attempt.
func record(opts Options, sink string, info Info, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	opts.Metrics.RecordArtifactWrite(sink, status, info.Bytes)

	log := opts.logger()
	if err != nil {
		log.Error("artifact write failed", logging.Path(info.Destination), logging.Error(err))
		return
	}
	log.Info("artifact written",
		logging.Path(info.Destination),
		logging.Bytes(int(info.Bytes)),
		logging.Digest(info.Digest))
}

// OpenSink picks a sink for dest: "s3://bucket/key" writes to S3, anything
// else is a local file path.
func OpenSink(ctx context.Context, dest string, opts Options) (Sink, error) {
	if strings.HasPrefix(dest, "s3://") {
		bucket, key, err := ParseS3URL(dest)
		if err != nil {
			return nil, err
		}
		cfg := opts.S3
		cfg.Bucket = bucket
		return NewS3Sink(ctx, cfg, key, opts)
	}
	if strings.Contains(dest, "://") {
		return nil, invalidDestination(dest, "unsupported scheme")
	}
	return NewFileSink(dest, opts)
}

func invalidDestination(dest, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidDestination, dest, reason)
}
