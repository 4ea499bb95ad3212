// Package templates holds the catalog of files every generated portfolio
// is made of.
//
// Each catalog entry is either static (copied byte for byte) or
// parametric (a text/template body rendered with [[ ]] delimiters, so that
// JSX object literals such as {{ opacity: 0 }} pass through untouched).
// Bodies are embedded from the files/ tree, which mirrors the output
// layout; parametric bodies carry an extra .tmpl suffix.
//
// A directory of overrides can replace individual bodies:
//
//	lib, err := templates.Default().Override(os.DirFS("my-templates"))
//	if err != nil {
//	    return err
//	}
//	for _, e := range lib.Entries() {
//	    fmt.Println(e.Path, e.Kind)
//	}
//
// Parametric bodies are rendered with a *content.Normalized as data. The
// built-in bodies only need the quoting helpers js, jsx and json. Override
// bodies may also use upper, lower, trim, join, contains, replace, dict and
// default:
//
//	# [[ upper .Name ]]
//
//	Skills: [[ join .Tags ", " ]]
//	Phone: [[ default "n/a" .Phone.Value ]]
package templates
