// Package generator renders file bodies and writes them to disk.
//
// # Rendering
//
// Templates use [[ ]] delimiters so that JSX and JSON braces need no
// escaping. Values that land inside generated source go through one of the
// quoting helpers:
//
//	js    "Ada \"The Countess\""     JavaScript string literal
//	jsx   {"<b>not a tag</b>"}       JSX text child expression
//	json  [{ "name": "Go" }]         indented JSON literal
//
// # Operations
//
// File writes are expressed as Operations that are validated up front and
// executed afterwards, or only reported with DryRun:
//
//	ops := []generator.Operation{
//	    &generator.WriteFileOp{Path: "out/site.zip", Content: data, Mode: 0644},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{DryRun: true})
//
// # Transactions
//
// Use transactions to write a whole tree or nothing:
//
//	tx := generator.NewTransaction()
//	tx.AddDir("out/src/utils", 0755)
//	tx.AddFile("out/package.json", manifest, 0644)
//
//	if err := tx.Commit(); err != nil {
//	    // Files and directories created so far were removed
//	    return err
//	}
package generator
