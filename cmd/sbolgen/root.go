package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dd0wney/sbolgraph/pkg/artifact"
	"github.com/dd0wney/sbolgraph/pkg/audit"
	"github.com/dd0wney/sbolgraph/pkg/codec"
	"github.com/dd0wney/sbolgraph/pkg/config"
	"github.com/dd0wney/sbolgraph/pkg/constraints"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/metrics"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

// errViolations is returned when a document fails validation.
var errViolations = errors.New("document has violations")

// app carries the state shared by every command of one invocation.
type app struct {
	v           *viper.Viper
	cfgFile     string
	showMetrics bool
	stdout      io.Writer
	stderr      io.Writer

	cfg     config.Config
	logger  logging.Logger
	metrics *metrics.Registry
	runID   string
	events  audit.Logger
	journal *audit.Journal
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		v:       config.New(),
		stdout:  stdout,
		stderr:  stderr,
		logger:  logging.NewNopLogger(),
		metrics: metrics.NewRegistry(),
		events:  audit.NewAuditLogger(64),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sbolgen",
		Short: "Build, validate and convert SBOL2 genetic circuit documents",
		Long: `sbolgen builds the CRISPR repression model as an SBOL2 document and writes
it as RDF/XML, JSON or YAML to a file or an S3 object. It also validates and
converts existing documents.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "YAML config file")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("journal", "", "append an audit entry per action to this JSONL file")
	pf.Int("workers", 0, "constraints checked concurrently (default: CPU count)")
	pf.BoolVar(&a.showMetrics, "metrics", false, "print a metrics summary to stderr on exit")
	a.bind(pf.Lookup("log-level"), "log_level")
	a.bind(pf.Lookup("journal"), "journal")
	a.bind(pf.Lookup("workers"), "workers")

	root.AddCommand(
		a.buildCmd(),
		a.validateCmd(),
		a.convertCmd(),
		a.configCmd(),
		a.journalCmd(),
		versionCmd(a),
	)
	return root
}

// bind makes a flag the highest-precedence source for a config key.
func (a *app) bind(flag *pflag.Flag, key string) {
	if err := a.v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag for %s: %v", key, err))
	}
}

// setup loads configuration and wires logging, metrics and auditing.
func (a *app) setup() error {
	cfg, err := config.Load(a.v, a.cfgFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.runID = uuid.NewString()
	a.logger = logging.NewJSONLogger(a.stderr, cfg.Level()).
		With(logging.Component("sbolgen"), logging.RunID(a.runID))

	if cfg.Journal != "" {
		j, err := audit.OpenJournal(cfg.Journal)
		if err != nil {
			return err
		}
		a.journal = j
		a.events = audit.Multi{a.events, j}
	}
	a.logger.Debug("configuration loaded", cfg.LogFields()...)
	return nil
}

// finish prints the metrics summary and closes the journal.
func (a *app) finish() error {
	var errs []error
	if a.showMetrics {
		errs = append(errs, a.metrics.WriteSummary(a.stderr))
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close())
	}
	return errors.Join(errs...)
}

// record appends an audit event; failures are logged, not returned.
func (a *app) record(action audit.Action, resource audit.ResourceType, id string, err error, meta map[string]any) {
	e := audit.NewEvent(a.runID, action, resource, id, err).WithMetadata(meta)
	if logErr := a.events.Log(e); logErr != nil {
		a.logger.Warn("audit event not recorded", logging.Error(logErr))
	}
}

func (a *app) validator() *constraints.Validator {
	return constraints.NewDefaultValidator(
		constraints.WithLogger(a.logger),
		constraints.WithMetrics(a.metrics),
		constraints.WithWorkers(a.cfg.Workers))
}

func (a *app) codecs(skipValidation bool) *codec.Registry {
	return codec.Default(codec.Settings{
		Logger:         a.logger,
		Metrics:        a.metrics,
		Validator:      a.validator(),
		SkipValidation: skipValidation,
	})
}

// readDocument loads path with the codec its extension names.
func (a *app) readDocument(path string) (*sbol.Document, codec.Codec, error) {
	c, err := a.codecs(false).ForPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := artifact.ReadFile(path)
	if err == nil {
		var doc *sbol.Document
		doc, err = c.Decode(bytes.NewReader(data))
		a.record(audit.ActionRead, audit.ResourceArtifact, path, err, map[string]any{"format": c.Name()})
		if err == nil {
			return doc, c, nil
		}
	} else {
		a.record(audit.ActionRead, audit.ResourceArtifact, path, err, nil)
	}
	return nil, nil, fmt.Errorf("read %s: %w", path, err)
}

// writeDocument encodes doc with c and stores it at dest.
func (a *app) writeDocument(ctx context.Context, c codec.Codec, doc *sbol.Document, dest string) (artifact.Info, error) {
	var buf bytes.Buffer
	if err := c.Encode(&buf, doc); err != nil {
		a.record(audit.ActionWrite, audit.ResourceArtifact, dest, err, map[string]any{"format": c.Name()})
		return artifact.Info{}, err
	}

	sink, err := artifact.OpenSink(ctx, dest, a.cfg.ArtifactOptions(a.logger, a.metrics))
	if err != nil {
		a.record(audit.ActionWrite, audit.ResourceArtifact, dest, err, nil)
		return artifact.Info{}, err
	}
	info, err := sink.Write(ctx, buf.Bytes())
	a.record(audit.ActionWrite, audit.ResourceArtifact, dest, err, map[string]any{
		"format":     c.Name(),
		"sink":       sink.Name(),
		"bytes":      info.Bytes,
		"digest":     info.Digest,
		"compressed": info.Compressed,
	})
	if err != nil {
		return artifact.Info{}, err
	}
	fmt.Fprintf(a.stdout, "wrote %s (%s, %d bytes, blake2b-256 %s)\n", info.Destination, c.Name(), info.Bytes, info.Digest)
	return info, nil
}
