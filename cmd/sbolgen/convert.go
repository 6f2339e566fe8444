package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dd0wney/sbolgraph/pkg/audit"
	"github.com/dd0wney/sbolgraph/pkg/logging"
)

func (a *app) convertCmd() *cobra.Command {
	var skipValidation bool
	cmd := &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Convert a document between rdfxml, json and yaml",
		Long: `Read <in> and write it to <out>, choosing both formats by file extension
(.rdf/.xml, .json, .yaml/.yml, each optionally followed by .sz). <out> may be
an s3://bucket/key URL. The document is validated before it is written.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runConvert(cmd.Context(), args[0], args[1], skipValidation)
		},
	}
	cmd.Flags().BoolVar(&skipValidation, "skip-validation", false, "write the document even if it has violations; rdfxml output still fails for entities without an owner")
	return cmd
}

func (a *app) runConvert(ctx context.Context, in, out string, skipValidation bool) error {
	doc, from, err := a.readDocument(in)
	if err != nil {
		return err
	}
	to, err := a.codecs(skipValidation).ForPath(out)
	if err != nil {
		return err
	}

	a.logger.Info("converting document",
		logging.Path(in), logging.String("from", from.Name()), logging.String("to", to.Name()))
	_, err = a.writeDocument(ctx, to, doc, out)
	a.record(audit.ActionConvert, audit.ResourceDocument, in, err, map[string]any{
		"from":   from.Name(),
		"to":     to.Name(),
		"output": out,
	})
	return err
}
