package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dd0wney/sbolgraph/pkg/audit"
	"github.com/dd0wney/sbolgraph/pkg/builder"
	"github.com/dd0wney/sbolgraph/pkg/circuits"
	"github.com/dd0wney/sbolgraph/pkg/identity"
	"github.com/dd0wney/sbolgraph/pkg/logging"
	"github.com/dd0wney/sbolgraph/pkg/sbol"
)

func (a *app) buildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the CRISPR repression model and write it",
		Long: `Build the CRISPR repression model (the generic CRISPR template and the
CRP_b characterization circuit), validate it and write it to --output.
An output ending in .sz is snappy-compressed; s3://bucket/key uploads to S3.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runBuild(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "", "output file or s3://bucket/key")
	f.StringP("format", "f", "", "output format: rdfxml, json or yaml")
	f.String("namespace", "", "URI prefix of every identity")
	f.String("model-version", "", "version stamped on every entity")
	f.Bool("compress", false, "snappy-compress the output")
	a.bind(f.Lookup("output"), "output")
	a.bind(f.Lookup("format"), "format")
	a.bind(f.Lookup("namespace"), "namespace")
	a.bind(f.Lookup("model-version"), "version")
	a.bind(f.Lookup("compress"), "compress")
	return cmd
}

func (a *app) runBuild(ctx context.Context) error {
	ns, err := identity.NewNamespace(a.cfg.Namespace, a.cfg.Version)
	if err != nil {
		return err
	}

	timer := logging.StartTimer(a.logger, "building CRISPR repression model",
		logging.String("namespace", ns.Prefix), logging.String("version", ns.Version))
	doc := sbol.NewDocument(sbol.WithLogger(a.logger), sbol.WithMetrics(a.metrics))
	doc, err = circuits.Populate(builder.New(doc, ns, builder.WithLogger(a.logger))).Build()
	meta := map[string]any{"version": ns.Version}
	if doc != nil {
		meta["entities"] = doc.Len()
	}
	a.record(audit.ActionBuild, audit.ResourceDocument, ns.Prefix, err, meta)
	if err != nil {
		timer.EndError(err)
		return err
	}
	timer.End(logging.Count(doc.Len()))

	c, err := a.codecs(false).Lookup(a.cfg.Format)
	if err != nil {
		return err
	}
	_, err = a.writeDocument(ctx, c, doc, a.cfg.Output)
	return err
}
