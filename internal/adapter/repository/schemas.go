package repository

import "github.com/eslsoft/expreal/pkg/filterexpr"

var listLexiconSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"language": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Language"},
		},
		"id": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "ID",
				filterexpr.OpIN: "IDs",
			},
		},
		"base": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Base",
				filterexpr.OpSW: "BasePrefix",
			},
		},
		"category": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Category",
				filterexpr.OpIN: "Categories",
			},
		},
		"features": {
			Kind: filterexpr.KindMap,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ:  "Features",
				filterexpr.OpHas: "HasFeatures",
			},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary: "position",
		FallbackKey:    "id",
		Fields: map[string]filterexpr.OrderField{
			"position": {Expr: "position"},
			"base":     {Expr: "base COLLATE NOCASE"},
			"category": {Expr: "category"},
			"id":       {Expr: "id"},
		},
	},
}
