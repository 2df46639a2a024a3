package filterexpr

import (
	"reflect"
	"strings"
	"testing"
)

type entryParams struct {
	Category    *string
	Categories  []string
	BasePrefix  *string
	Features    map[string]string
	HasFeatures []string
	OrderBy     string
}

type request struct {
	filter  string
	orderBy string
}

func (r request) GetFilter() string  { return r.filter }
func (r request) GetOrderBy() string { return r.orderBy }

var entrySchema = ResourceSchema{
	Filter: map[string]FilterField{
		"category": {
			Kind: KindString,
			Ops: map[Op]string{
				OpEQ: "Category",
				OpIN: "Categories",
			},
		},
		"base": {
			Kind: KindString,
			Ops:  map[Op]string{OpSW: "BasePrefix"},
		},
		"features": {
			Kind: KindMap,
			Ops: map[Op]string{
				OpEQ:  "Features",
				OpHas: "HasFeatures",
			},
		},
	},
	Order: OrderSchema{
		DefaultPrimary: "position",
		FallbackKey:    "id",
		Fields: map[string]OrderField{
			"position": {Expr: "position"},
			"base":     {Expr: "base COLLATE NOCASE"},
			"id":       {Expr: "id"},
		},
	},
}

func TestBind_Entries(t *testing.T) {
	var params entryParams
	req := request{
		filter:  "category == 'PRONOUN' && base.startsWith('s') && features.GENDER == 'FEMININE' && has(features.REFLEXIVE)",
		orderBy: "base desc",
	}

	if err := Bind(req, &params, entrySchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}

	if params.Category == nil || *params.Category != "PRONOUN" {
		t.Fatalf("expected Category PRONOUN, got %v", params.Category)
	}
	if params.BasePrefix == nil || *params.BasePrefix != "s" {
		t.Fatalf("expected BasePrefix s, got %v", params.BasePrefix)
	}
	if !reflect.DeepEqual(params.Features, map[string]string{"GENDER": "FEMININE"}) {
		t.Fatalf("unexpected Features %v", params.Features)
	}
	if !reflect.DeepEqual(params.HasFeatures, []string{"REFLEXIVE"}) {
		t.Fatalf("unexpected HasFeatures %v", params.HasFeatures)
	}
	if params.OrderBy != "base COLLATE NOCASE DESC, id ASC" {
		t.Fatalf("unexpected OrderBy %q", params.OrderBy)
	}
}

func TestBind_InOperator(t *testing.T) {
	var params entryParams
	if err := Bind(request{filter: "category in ['NOUN', 'VERB']"}, &params, entrySchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if !reflect.DeepEqual(params.Categories, []string{"NOUN", "VERB"}) {
		t.Fatalf("unexpected Categories %v", params.Categories)
	}
	if params.Category != nil {
		t.Fatalf("expected Category to stay nil, got %v", *params.Category)
	}
}

func TestBind_DefaultOrder(t *testing.T) {
	var params entryParams
	if err := Bind(request{}, &params, entrySchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if params.OrderBy != "position ASC, id ASC" {
		t.Fatalf("unexpected OrderBy %q", params.OrderBy)
	}

	if err := Bind(request{orderBy: "id desc"}, &params, entrySchema); err != nil {
		t.Fatalf("Bind returned error: %v", err)
	}
	if params.OrderBy != "id DESC" {
		t.Fatalf("fallback key must not repeat, got %q", params.OrderBy)
	}
}

func TestBind_Errors(t *testing.T) {
	tests := []struct {
		name    string
		req     request
		wantErr string
	}{
		{name: "or", req: request{filter: "category == 'NOUN' || category == 'VERB'"}, wantErr: "only AND"},
		{name: "unknown field", req: request{filter: "lemma == 'x'"}, wantErr: "not allowed"},
		{name: "op not allowed", req: request{filter: "base == 'x'"}, wantErr: "operator"},
		{name: "map without key", req: request{filter: "features == 'x'"}, wantErr: "needs a key"},
		{name: "string with key", req: request{filter: "category.X == 'x'"}, wantErr: "has no key"},
		{name: "number literal", req: request{filter: "category == 1"}, wantErr: "not supported"},
		{name: "empty list", req: request{filter: "category in []"}, wantErr: "must not be empty"},
		{name: "syntax", req: request{filter: "category =="}, wantErr: "invalid filter"},
		{name: "bad direction", req: request{orderBy: "base up"}, wantErr: "invalid direction"},
		{name: "duplicate order", req: request{orderBy: "base, base desc"}, wantErr: "duplicate"},
		{name: "unknown order", req: request{orderBy: "category"}, wantErr: "cannot be used"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var params entryParams
			err := Bind(tc.req, &params, entrySchema)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestBind_InvalidParams(t *testing.T) {
	type noOrder struct {
		Category *string
	}
	var params noOrder
	if err := Bind(request{filter: "category == 'NOUN'"}, &params, entrySchema); err == nil {
		t.Fatalf("expected error for params without OrderBy")
	}

	type wrongType struct {
		Category *int
		OrderBy  string
	}
	var wrong wrongType
	if err := Bind(request{filter: "category == 'NOUN'"}, &wrong, entrySchema); err == nil {
		t.Fatalf("expected error for non-string destination")
	}
}
