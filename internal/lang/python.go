package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguagePython,
		Extensions: []string{".py", ".pyi"},
		Rules: []KindRule{
			// function_definition covers both module-level functions and
			// methods in Python's grammar; the extractor promotes to
			// KindMethod when a class_definition ancestor is on the parent
			// stack, same policy as Rust (see DESIGN.md).
			{model.KindFunction, []string{"function_definition"}},
			{model.KindClass, []string{"class_definition"}},
			{model.KindImport, []string{"import_statement", "import_from_statement"}},
			{model.KindModule, []string{"module"}},
		},
		CallTypes: callSet("call"),
	})
}
