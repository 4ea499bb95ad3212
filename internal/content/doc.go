// Package content turns a caller-supplied profile into data ready for
// template substitution.
//
// # Records
//
// A Record is the raw profile: identity, contact details, social links,
// projects and skills exactly as a person typed them. Records are loaded
// from YAML or JSON with Load/Parse and checked with Validate before they
// are handed to the generator. The generator itself never re-validates.
//
// # Normalization
//
// Normalize is total. Comma-separated strings are exploded into trimmed,
// non-empty tokens; projects without a title are dropped before indexing;
// optional fields become Optional values that are either Present or Absent:
//
//	src := content.NewSource(42)
//	n := content.Normalize(record, src)
//	if n.Phone.IsPresent() {
//	    fmt.Println("call", n.Phone.Value())
//	}
//
// Skill proficiency levels come from the injected ProficiencySource, so a
// fixed seed reproduces the exact same output.
package content
