package cmd

import (
	"fmt"

	"github.com/ComedicChimera/olive"
	"github.com/hashicorp/go-multierror"

	"github.com/mxmlextrema/mxmlcaot/config"
	"github.com/mxmlextrema/mxmlcaot/numeric"
	"github.com/mxmlextrema/mxmlcaot/report"
	"github.com/mxmlextrema/mxmlcaot/semantics"
)

// execPreludeCommand executes the `prelude` subcommand: it declares the
// built-in definitions into a fresh database and checks that they resolve.
func execPreludeCommand(result *olive.ArgParseResult) {
	db, ok := newPreludeDatabase(result)
	if !ok {
		return
	}

	for _, p := range db.TopLevelPackage().ListPackagesRecursively() {
		if p.IsEmptyPackage(db) {
			continue
		}

		name := p.FullyQualifiedName()
		if name == "" {
			name = "<top level>"
		}

		report.DisplayInfoMessage("package", fmt.Sprintf("%s (%d definitions)", name, p.Properties(db).Len()))
	}

	report.ReportViolations("prelude", checkPrelude(db))
}

// newPreludeDatabase creates a database from the options of the project and
// declares the prelude into it.
func newPreludeDatabase(result *olive.ArgParseResult) (*semantics.Database, bool) {
	options, err := config.LoadOptions(projectPath(result))
	if err != nil {
		report.ReportViolations("config", err)
		return nil, false
	}

	db := semantics.NewDatabase(options).WithLogger(report.Logger())
	semantics.DeclarePrelude(db)
	return db, true
}

// checkPrelude resolves a few definitions of the prelude through the model
// and returns every failure.
func checkPrelude(db *semantics.Database) error {
	var merr *multierror.Error
	lookup := db.PropertyLookup()
	scope := db.ConstEvalScope()

	for _, name := range []string{"Object", "Number", "String", "Array", "Vector"} {
		r, err := lookup.LookupInScopeChain(scope, nil, semantics.LocalNameKey(name))
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("resolving `%s`: %w", name, err))
		} else if r == nil {
			merr = multierror.Append(merr, fmt.Errorf("`%s` is not defined", name))
		}
	}

	// int(5) to Number folds to Number(5).
	five := db.Factory().CreateNumberConstant(numeric.FromInt(5), db.IntType())
	r, err := db.Conversions().Implicit(five, db.NumberType(), false)
	switch {
	case err != nil:
		merr = multierror.Append(merr, fmt.Errorf("converting int to Number: %w", err))
	case r == nil || r.Kind() != semantics.KindNumberConstant:
		merr = multierror.Append(merr, fmt.Errorf("int constant does not fold to a Number constant"))
	}

	return merr.ErrorOrNil()
}
