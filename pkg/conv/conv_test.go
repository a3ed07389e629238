package conv

import "testing"

func TestConfigGet(t *testing.T) {
	m := map[string]any{
		"addr": "localhost:6379",
		"dir":  "data",
	}
	if got := ConfigGet[string](m, "addr", "x"); got != "localhost:6379" {
		t.Errorf("ConfigGet(addr) = %q", got)
	}
	if got := ConfigGet[string](m, "missing", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet(missing) = %q, want fallback", got)
	}
	if got := ConfigGet[string](nil, "addr", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet on nil map = %q, want fallback", got)
	}
	// 类型不符时回退默认值
	if got := ConfigGet[string](map[string]any{"addr": 42}, "addr", "fallback"); got != "fallback" {
		t.Errorf("ConfigGet with wrong type = %q, want fallback", got)
	}
}

func TestConfigGetInt(t *testing.T) {
	tests := []struct {
		name string
		m    map[string]any
		want int
	}{
		{name: "int", m: map[string]any{"db": int(3)}, want: 3},
		{name: "int64", m: map[string]any{"db": int64(3)}, want: 3},
		{name: "float64 from json", m: map[string]any{"db": float64(3)}, want: 3},
		{name: "missing", m: map[string]any{}, want: 7},
		{name: "nil map", m: nil, want: 7},
		{name: "wrong type", m: map[string]any{"db": "three"}, want: 7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConfigGetInt(tt.m, "db", 7); got != tt.want {
				t.Errorf("ConfigGetInt() = %d, want %d", got, tt.want)
			}
		})
	}
}
