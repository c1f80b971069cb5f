package cmd

import (
	"fmt"
	"strings"

	"github.com/ComedicChimera/olive"
	"github.com/peterh/liner"

	"github.com/mxmlextrema/mxmlcaot/report"
	"github.com/mxmlextrema/mxmlcaot/semantics"
)

// execLookupCommand executes the `lookup` subcommand: a prompt that resolves
// each dotted name it reads against the prelude.
func execLookupCommand(result *olive.ArgParseResult) {
	db, ok := newPreludeDatabase(result)
	if !ok {
		return
	}

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	for {
		line, err := ln.Prompt("lookup> ")
		if err != nil {
			// EOF or ^C
			fmt.Println()
			return
		}

		line = strings.TrimSpace(line)
		switch line {
		case "":
			continue
		case ":quit":
			return
		}

		ln.AppendHistory(line)

		r, err := resolvePath(db, line)
		switch {
		case err != nil:
			report.ReportSemanticWarning(line, "%s", err)
		case r == nil:
			report.ReportSemanticWarning(line, "not defined")
		default:
			report.DisplayInfoMessage(line, describeValue(db, r))
		}
	}
}

// resolvePath resolves a dotted name.  The longest prefix naming a package is
// the starting point; otherwise the first component is resolved from the
// constant evaluation scope.  Each further component is a property of the
// previous result: a static property if it denotes a type.
func resolvePath(db *semantics.Database, path string) (*semantics.Entity, error) {
	lookup := db.PropertyLookup()
	scope := db.ConstEvalScope()
	components := strings.Split(path, ".")

	pckg, i := db.TopLevelPackage(), 0
	for ; i < len(components)-1; i++ {
		sub := pckg.Subpackage(components[i])
		if sub == nil {
			break
		}

		pckg = sub
	}

	var r *semantics.Entity
	var err error
	if i == 0 {
		r, err = lookup.LookupInScopeChain(scope, nil, semantics.LocalNameKey(components[0]))
	} else {
		r, err = lookup.LookupInObject(pckg, scope.OpenNsSet(), nil, semantics.LocalNameKey(components[i]), false)
	}

	for i++; err == nil && r != nil && i < len(components); i++ {
		base := r
		if p := r.Property(); p != nil && p.IsType() {
			base = p
		}

		r, err = lookup.LookupInObject(base, scope.OpenNsSet(), nil, semantics.LocalNameKey(components[i]), false)
	}

	return r, err
}

// describeValue renders a resolved value with the property it references and
// its static type.
func describeValue(db *semantics.Database, v *semantics.Entity) string {
	s := v.Kind().String()
	if p := v.Property(); p != nil {
		s += " " + p.String()
	}

	return s + " : " + v.StaticType(db).String()
}
