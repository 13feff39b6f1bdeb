package httpapi

import "github.com/eslsoft/jyutcollab/pkg/filterexpr"

// Schema 定义步骤说明：
// 1. filter 中允许的字段名是 map 的 key，Ops 把操作符映射到
//    ListEntryQuery 里的字段。
// 2. order_by 只接受 Order.Fields 白名单里的键，最多两个。
// 不在 schema 中的字段或操作符会被拒绝，保证行为可控。
var listEntriesSchema = filterexpr.ResourceSchema{
	Filter: map[string]filterexpr.FilterField{
		"headword": {
			Kind: filterexpr.KindString,
			Ops: map[filterexpr.Op]string{
				filterexpr.OpEQ: "Query",
				filterexpr.OpSW: "Query",
			},
		},
		"dialect": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Dialect"},
		},
		"status": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "Status"},
		},
		"theme": {
			Kind: filterexpr.KindNumber,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "ThemeL3ID"},
		},
		"created_by": {
			Kind: filterexpr.KindString,
			Ops:  map[filterexpr.Op]string{filterexpr.OpEQ: "CreatedBy"},
		},
	},
	Order: filterexpr.OrderSchema{
		DefaultPrimary:     "updated_at",
		DefaultPrimaryDesc: true,
		FallbackKey:        "created_at",
		FallbackDesc:       true,
		Fields: map[string]filterexpr.OrderField{
			"headword":   {Expr: "headword_normalized"},
			"status":     {Expr: "status"},
			"dialect":    {Expr: "dialect"},
			"view_count": {Expr: "view_count"},
			"like_count": {Expr: "like_count"},
			"created_at": {Expr: "created_at"},
			"updated_at": {Expr: "updated_at"},
		},
	},
}
