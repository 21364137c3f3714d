package lang

import "github.com/grahambrooks/codemap/internal/model"

func init() {
	Register(&Spec{
		Language:   model.LanguageC,
		Extensions: []string{".c", ".h"},
		Rules: []KindRule{
			{model.KindFunction, []string{"function_definition"}},
			{model.KindStruct, []string{"struct_specifier"}},
			{model.KindEnum, []string{"enum_specifier"}},
			{model.KindTypeAlias, []string{"type_definition"}},
			{model.KindImport, []string{"preproc_include"}},
			{model.KindConstant, []string{"preproc_def"}},
			{model.KindModule, []string{"translation_unit"}},
		},
		CallTypes: callSet("call_expression"),
	})
}
