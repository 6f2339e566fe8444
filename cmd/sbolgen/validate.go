package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dd0wney/sbolgraph/pkg/audit"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a document and report every violation",
		Long: `Parse a document (format chosen by extension, .sz inputs decompressed)
and run every structural check: unresolved references, missing required
fields, subject/object membership, duplicate identities and cardinality.
Exits non-zero when any violation is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runValidate(args[0])
		},
	}
}

func (a *app) runValidate(path string) error {
	doc, c, err := a.readDocument(path)
	if err != nil {
		return err
	}

	result, err := a.validator().Validate(doc)
	if err != nil {
		return err
	}

	meta := map[string]any{"entities": doc.Len(), "violations": len(result.Violations)}
	if result.Valid {
		a.record(audit.ActionValidate, audit.ResourceDocument, path, nil, meta)
		fmt.Fprintf(a.stdout, "%s: valid %s document, %d entities\n", path, c.Name(), doc.Len())
		return nil
	}

	for _, violation := range result.Violations {
		fmt.Fprintln(a.stdout, violation.String())
	}
	err = fmt.Errorf("%w: %s: %d violation(s)", errViolations, path, len(result.Violations))
	a.record(audit.ActionValidate, audit.ResourceDocument, path, err, meta)
	return err
}
