package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageGo,
		Extensions: []string{".go"},
		Rules: []KindRule{
			{model.KindFunction, []string{"function_declaration"}},
			{model.KindMethod, []string{"method_declaration"}},
			// type_spec covers struct_type, interface_type, and plain type
			// aliases alike in the Go grammar; the extractor refines this
			// to KindInterface/KindTypeAlias by inspecting the "type" field
			// child (see refineGoTypeSpec in the extractor).
			{model.KindStruct, []string{"type_spec"}},
			{model.KindTypeAlias, []string{"type_alias"}},
			{model.KindConstant, []string{"const_spec"}},
			{model.KindImport, []string{"import_spec"}},
			{model.KindModule, []string{"source_file"}},
			{model.KindVariable, []string{"var_spec"}},
		},
		CallTypes: callSet("call_expression"),
	})
}
