package core

import (
	"reflect"
	"testing"
)

func TestParseMethod(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Method
		wantErr bool
	}{
		{name: "item_based", in: "item_based", want: MethodItemBased},
		{name: "user_based", in: "user_based", want: MethodUserBased},
		{name: "content_based", in: "content_based", want: MethodContentBased},
		{name: "hybrid", in: "hybrid", want: MethodHybrid},
		{name: "unknown", in: "magic", wantErr: true},
		{name: "empty", in: "", wantErr: true},
		{name: "case sensitive", in: "Hybrid", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if !IsInvalidInput(err) {
					t.Errorf("ParseMethod(%q) err = %v, want INVALID_INPUT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) error = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if got.String() != tt.in {
				t.Errorf("String() = %q, want round-trip %q", got.String(), tt.in)
			}
		})
	}
}

func TestMethodValid(t *testing.T) {
	for _, m := range Methods() {
		if !m.Valid() {
			t.Errorf("%v should be valid", m)
		}
	}
	if Method(0).Valid() || Method(99).Valid() {
		t.Error("out-of-range method should be invalid")
	}
}

func TestParseEventKind(t *testing.T) {
	tests := []struct {
		in      string
		want    EventKind
		wantErr bool
	}{
		{in: "view", want: EventView},
		{in: "add_to_cart", want: EventAddToCart},
		{in: "addtocart", want: EventAddToCart}, // 历史拼写
		{in: "transaction", want: EventTransaction},
		{in: "purchase", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEventKind(tt.in)
			if tt.wantErr {
				if !IsInvalidInput(err) {
					t.Errorf("err = %v, want INVALID_INPUT", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseEventKind(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestEventStrength(t *testing.T) {
	if EventView.Strength() != 1 || EventAddToCart.Strength() != 2 || EventTransaction.Strength() != 3 {
		t.Error("event strengths must be view=1, add_to_cart=2, transaction=3")
	}
	if EventKind(0).Strength() != 0 {
		t.Error("zero event should have zero strength")
	}
}

func TestCatalog(t *testing.T) {
	c := NewCatalog([]Product{
		{ID: "p1", Name: "first", Price: 10},
		{ID: "p2", Name: "second", Price: 25},
		{ID: "p1", Name: "dup", Price: 99}, // 重复 ID，保留首次出现
	})

	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
	p, ok := c.Get("p1")
	if !ok || p.Name != "first" {
		t.Errorf("Get(p1) = %+v, want first occurrence", p)
	}
	if _, ok := c.Get("p9"); ok {
		t.Error("Get(p9) should miss")
	}
	if got := c.IDs(); !reflect.DeepEqual(got, []string{"p1", "p2"}) {
		t.Errorf("IDs() = %v, want load order", got)
	}
	if got := c.TotalPrice([]string{"p1", "p2", "p9"}); got != 35 {
		t.Errorf("TotalPrice() = %v, want 35", got)
	}

	hits := c.Lookup([]string{"p2", "p2", "p9"})
	if len(hits) != 1 || hits[0].ID != "p2" {
		t.Errorf("Lookup() = %v, want single p2", hits)
	}
}

func TestCatalogNil(t *testing.T) {
	var c *Catalog
	if c.Len() != 0 || c.Has("p1") || c.IDs() != nil {
		t.Error("nil catalog should behave as empty")
	}
}

func TestDomainError(t *testing.T) {
	err := NewDomainError(ModuleRecommend, ErrorCodeNotFound, "recommend: product missing")
	if !IsNotFound(err) {
		t.Error("IsNotFound should match")
	}
	if IsInvalidInput(err) || IsNotReady(err) || IsCorrupt(err) {
		t.Error("other predicates should not match")
	}
	if GetDomainError(err).Module != ModuleRecommend {
		t.Errorf("Module = %q, want %q", GetDomainError(err).Module, ModuleRecommend)
	}
	if GetDomainError(nil) != nil {
		t.Error("GetDomainError(nil) should be nil")
	}
}
