package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageCPP,
		Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hxx"},
		Rules: []KindRule{
			// function_definition covers free functions and methods alike
			// (including those defined inline in a class body); the
			// extractor promotes to KindMethod via the same
			// container-ancestor policy used for Rust and Python.
			{model.KindFunction, []string{"function_definition"}},
			{model.KindClass, []string{"class_specifier"}},
			{model.KindStruct, []string{"struct_specifier"}},
			{model.KindEnum, []string{"enum_specifier"}},
			{model.KindTypeAlias, []string{"type_definition", "alias_declaration"}},
			{model.KindImport, []string{"preproc_include"}},
			{model.KindConstant, []string{"preproc_def"}},
			{model.KindNamespace, []string{"namespace_definition"}},
			{model.KindModule, []string{"translation_unit"}},
		},
		CallTypes: callSet("call_expression"),
	})
}
