package similarity

import (
	"context"
	"math"
	"testing"

	"github.com/rushteam/recmall/core"
	"github.com/rushteam/recmall/matrix"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{name: "identical vectors", a: []float64{1, 2, 3}, b: []float64{1, 2, 3}, want: 1},
		{name: "orthogonal vectors", a: []float64{1, 0}, b: []float64{0, 1}, want: 0},
		{name: "proportional vectors", a: []float64{1, 2}, b: []float64{2, 4}, want: 1},
		{name: "zero vector", a: []float64{0, 0}, b: []float64{1, 2}, want: 0},
		{name: "both zero", a: []float64{0, 0}, b: []float64{0, 0}, want: 0},
		{name: "length mismatch", a: []float64{1}, b: []float64{1, 2}, want: 0},
		{name: "empty", a: nil, b: nil, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Cosine(tt.a, tt.b); !almostEqual(got, tt.want) {
				t.Errorf("Cosine() = %v, want %v", got, tt.want)
			}
		})
	}
}

func buildMatrix(t *testing.T) *matrix.UserItem {
	t.Helper()
	return matrix.Build([]matrix.Aggregated{
		{UserID: "u1", ProductID: "A", Strength: 3},
		{UserID: "u1", ProductID: "B", Strength: 1},
		{UserID: "u2", ProductID: "A", Strength: 3},
		{UserID: "u2", ProductID: "B", Strength: 2},
		{UserID: "u3", ProductID: "C", Strength: 2},
	})
}

func TestItemCollaborative(t *testing.T) {
	sim, err := ItemCollaborative(context.Background(), buildMatrix(t))
	if err != nil {
		t.Fatalf("ItemCollaborative() error = %v", err)
	}

	// A=(3,3,0), B=(1,2,0) 同向性很高；C=(0,0,2) 与二者正交
	if got := sim.Sim("A", "C"); got != 0 {
		t.Errorf("Sim(A, C) = %v, want 0", got)
	}
	ab := sim.Sim("A", "B")
	want := 9.0 / (math.Sqrt(18) * math.Sqrt(5))
	if !almostEqual(ab, want) {
		t.Errorf("Sim(A, B) = %v, want %v", ab, want)
	}
	// 权重非负，协同相似度不可能为负
	for i := range sim.Data {
		for j := range sim.Data[i] {
			if sim.Data[i][j] < 0 {
				t.Errorf("negative collaborative similarity at (%d, %d)", i, j)
			}
		}
	}
	assertSymmetricUnitDiagonal(t, sim)
}

func TestUserCollaborative(t *testing.T) {
	sim, err := UserCollaborative(context.Background(), buildMatrix(t))
	if err != nil {
		t.Fatalf("UserCollaborative() error = %v", err)
	}
	if got := sim.Sim("u1", "u3"); got != 0 {
		t.Errorf("Sim(u1, u3) = %v, want 0", got)
	}
	if got := sim.Sim("u1", "u2"); got <= 0.9 {
		t.Errorf("Sim(u1, u2) = %v, want close to 1", got)
	}
	assertSymmetricUnitDiagonal(t, sim)
}

func assertSymmetricUnitDiagonal(t *testing.T, m *Matrix) {
	t.Helper()
	for i := range m.IDs {
		if m.Data[i][i] != 1 {
			t.Errorf("Data[%d][%d] = %v, want 1", i, i, m.Data[i][i])
		}
		for j := range m.IDs {
			if !almostEqual(m.Data[i][j], m.Data[j][i]) {
				t.Errorf("matrix not symmetric at (%d, %d)", i, j)
			}
			if m.Data[i][j] < -1-eps || m.Data[i][j] > 1+eps {
				t.Errorf("Data[%d][%d] = %v out of [-1,1]", i, j, m.Data[i][j])
			}
		}
	}
}

func TestPairwiseDeterministic(t *testing.T) {
	m := buildMatrix(t)
	first, err := ItemCollaborative(context.Background(), m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		again, err := ItemCollaborative(context.Background(), m)
		if err != nil {
			t.Fatal(err)
		}
		for a := range first.Data {
			for b := range first.Data[a] {
				if first.Data[a][b] != again.Data[a][b] {
					t.Fatalf("run %d differs at (%d, %d)", i, a, b)
				}
			}
		}
	}
}

func TestPairwiseCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ItemCollaborative(ctx, buildMatrix(t)); err == nil {
		t.Error("expected error from cancelled context")
	}
}

func TestMatrixUnknownID(t *testing.T) {
	sim := NewMatrix([]string{"A", "B"})
	if got := sim.Sim("A", "missing"); got != 0 {
		t.Errorf("Sim with unknown id = %v, want 0", got)
	}
	if sim.Has("missing") {
		t.Error("Has(missing) = true, want false")
	}
	if _, ok := sim.Row("missing"); ok {
		t.Error("Row(missing) ok = true, want false")
	}
}

func TestStandardScaler(t *testing.T) {
	s := FitScaler([]float64{2, 4, 6})
	if !almostEqual(s.Mean, 4) {
		t.Errorf("Mean = %v, want 4", s.Mean)
	}
	if !almostEqual(s.Std, math.Sqrt(8.0/3.0)) {
		t.Errorf("Std = %v, want %v", s.Std, math.Sqrt(8.0/3.0))
	}
	if got := s.Transform(4); !almostEqual(got, 0) {
		t.Errorf("Transform(mean) = %v, want 0", got)
	}

	same := FitScaler([]float64{5, 5, 5})
	if got := same.Transform(5); got != 0 {
		t.Errorf("Transform with zero std = %v, want 0", got)
	}
}

func TestFeatureSpaceEncode(t *testing.T) {
	products := []core.Product{
		{ID: "p1", Category: "electronics", Brand: "acme", Price: 100, Rating: 4.5},
		{ID: "p2", Category: "books", Brand: "zen", Price: 20, Rating: 3.0},
	}
	fs := FitFeatureSpace(products, nil)

	// 词表按字典序：books, electronics / acme, zen
	if fs.Dim() != 6 {
		t.Fatalf("Dim() = %d, want 6", fs.Dim())
	}
	vec := fs.Encode(products[0], nil)
	if vec[0] != 0 || vec[1] != 1 {
		t.Errorf("category one-hot = %v", vec[:2])
	}
	if vec[2] != 1 || vec[3] != 0 {
		t.Errorf("brand one-hot = %v", vec[2:4])
	}
	if vec[5] != 4.5 {
		t.Errorf("rating slot = %v, want 4.5", vec[5])
	}

	// 词表外类目/品牌编码为全零位
	out := fs.Encode(core.Product{ID: "x", Category: "toys", Brand: "nobody", Price: 60}, nil)
	if out[0] != 0 || out[1] != 0 || out[2] != 0 || out[3] != 0 {
		t.Errorf("unknown vocab should encode to zeros, got %v", out[:4])
	}
}

func TestContent(t *testing.T) {
	catalog := core.NewCatalog([]core.Product{
		{ID: "p1", Category: "electronics", Brand: "acme", Price: 100, Rating: 4.5},
		{ID: "p2", Category: "electronics", Brand: "acme", Price: 110, Rating: 4.4},
		{ID: "p3", Category: "books", Brand: "zen", Price: 20, Rating: 3.0},
	})
	sim, fs, err := Content(context.Background(), catalog, nil)
	if err != nil {
		t.Fatalf("Content() error = %v", err)
	}
	if fs == nil {
		t.Fatal("Content() returned nil feature space")
	}
	if sim.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", sim.Len())
	}
	// 同类同品牌的 p1/p2 必须比跨类的 p1/p3 更相似
	if sim.Sim("p1", "p2") <= sim.Sim("p1", "p3") {
		t.Errorf("Sim(p1, p2) = %v should exceed Sim(p1, p3) = %v",
			sim.Sim("p1", "p2"), sim.Sim("p1", "p3"))
	}
	assertSymmetricUnitDiagonal(t, sim)
}

func TestContentOverrides(t *testing.T) {
	catalog := core.NewCatalog([]core.Product{
		{ID: "p1", Category: "electronics", Brand: "acme", Price: 100, Rating: 4.5},
		{ID: "p2", Category: "electronics", Brand: "acme", Price: 500, Rating: 2.0},
	})
	overrides := map[string]NumericOverride{
		"p2": {Price: 100, Rating: 4.5}, // 覆盖后与 p1 完全一致
	}
	sim, _, err := Content(context.Background(), catalog, overrides)
	if err != nil {
		t.Fatal(err)
	}
	if got := sim.Sim("p1", "p2"); !almostEqual(got, 1) {
		t.Errorf("Sim with overrides = %v, want 1", got)
	}
}
