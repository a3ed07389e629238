package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/rushteam/recmall/core"
)

// 两个本地后端共用同一组契约用例。
func testStoreContract(t *testing.T, s core.Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("Get(missing) err = %v, want store not found", err)
	}

	if err := s.Set(ctx, "k1", []byte("v1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := s.Get(ctx, "k1")
	if err != nil || string(got) != "v1" {
		t.Errorf("Get(k1) = %q, %v; want v1", got, err)
	}

	// 覆盖写
	if err := s.Set(ctx, "k1", []byte("v2")); err != nil {
		t.Fatal(err)
	}
	got, _ = s.Get(ctx, "k1")
	if string(got) != "v2" {
		t.Errorf("Get(k1) after overwrite = %q, want v2", got)
	}

	if err := s.BatchSet(ctx, map[string][]byte{
		"k2": []byte("v2"),
		"k3": []byte("v3"),
	}); err != nil {
		t.Fatalf("BatchSet() error = %v", err)
	}
	kvs, err := s.BatchGet(ctx, []string{"k2", "k3", "missing"})
	if err != nil {
		t.Fatalf("BatchGet() error = %v", err)
	}
	want := map[string][]byte{"k2": []byte("v2"), "k3": []byte("v3")}
	if !reflect.DeepEqual(kvs, want) {
		t.Errorf("BatchGet() = %v, want %v (missing keys omitted)", kvs, want)
	}

	if err := s.Delete(ctx, "k1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "k1"); !core.IsStoreNotFound(err) {
		t.Errorf("Get after Delete err = %v, want store not found", err)
	}
	// 删不存在的 key 不报错
	if err := s.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}

	if err := s.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStoreContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	testStoreContract(t, s)
}

func TestFileStoreNestedKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	if err := s.Set(ctx, "recmall:model:matrix", []byte("data")); err != nil {
		t.Fatalf("Set nested key error = %v", err)
	}
	got, err := s.Get(ctx, "recmall:model:matrix")
	if err != nil || string(got) != "data" {
		t.Errorf("Get nested key = %q, %v", got, err)
	}
}

func TestMemoryStoreZSet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.ZAdd(ctx, "rank", 1.0, "low"); err != nil {
		t.Fatal(err)
	}
	if err := s.ZAdd(ctx, "rank", 3.0, "high"); err != nil {
		t.Fatal(err)
	}
	if err := s.ZAdd(ctx, "rank", 2.0, "mid"); err != nil {
		t.Fatal(err)
	}

	got, err := s.ZRange(ctx, "rank", 0, -1)
	if err != nil {
		t.Fatalf("ZRange() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"high", "mid", "low"}) {
		t.Errorf("ZRange() = %v, want score-descending order", got)
	}

	head, err := s.ZRange(ctx, "rank", 0, 0)
	if err != nil || !reflect.DeepEqual(head, []string{"high"}) {
		t.Errorf("ZRange(0,0) = %v, %v; want [high]", head, err)
	}

	score, err := s.ZScore(ctx, "rank", "mid")
	if err != nil || score != 2.0 {
		t.Errorf("ZScore(mid) = %v, %v; want 2", score, err)
	}
	if _, err := s.ZScore(ctx, "rank", "missing"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore(missing) err = %v, want store not found", err)
	}
	if _, err := s.ZScore(ctx, "nokey", "x"); !core.IsStoreNotFound(err) {
		t.Errorf("ZScore on absent zset err = %v, want store not found", err)
	}
}
