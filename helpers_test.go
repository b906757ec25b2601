package main

import (
	"context"
	"path/filepath"
	"testing"
)

const fixturePath = "testdata/launches.csv"

func loadFixture(t *testing.T) *Dataset {
	t.Helper()
	ds, err := LoadDataset(filepath.FromSlash(fixturePath))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return ds
}

// backends returns every Querier implementation loaded with the fixture.
func backends(t *testing.T) map[string]Querier {
	t.Helper()
	ds := loadFixture(t)
	store, err := OpenSQLStore(context.Background(), ds)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return map[string]Querier{
		backendMemory: ds,
		backendSQLite: store,
	}
}
