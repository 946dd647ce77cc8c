package jsonfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

type counter struct {
	Items []string `json:"items"`
}

func TestFile_ReadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "missing.json"))
	var c counter
	if err := f.Read(&c); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestFile_UpdateConcurrentAppendsAreNotLost(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "lists.json"))

	const writers = 20
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var c counter
			err := f.Update(&c, func() error {
				c.Items = append(c.Items, fmt.Sprintf("item-%d", i))
				return nil
			})
			if err != nil {
				t.Errorf("update: %v", err)
			}
		}(i)
	}
	wg.Wait()

	var c counter
	if err := f.Read(&c); err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(c.Items) != writers {
		t.Fatalf("expected %d items, got %d", writers, len(c.Items))
	}
}

func TestFile_UpdateErrorSkipsWrite(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "tags.json"))
	if err := f.Write(counter{Items: []string{"a"}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	boom := errors.New("boom")
	var c counter
	err := f.Update(&c, func() error {
		c.Items = nil
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected mutate error, got %v", err)
	}
	var got counter
	_ = f.Read(&got)
	if !reflect.DeepEqual(got.Items, []string{"a"}) {
		t.Fatalf("expected file untouched, got %+v", got)
	}
}

func TestFile_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "categories.json"))
	for i := 0; i < 3; i++ {
		if err := f.Write(counter{Items: []string{"x"}}); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("expected only the document, got %d entries", len(entries))
	}
}

func TestDir_Lifecycle(t *testing.T) {
	d := NewDir(filepath.Join(t.TempDir(), "pois"))

	keys, err := d.Keys()
	if err != nil || len(keys) != 0 {
		t.Fatalf("expected no keys in missing dir, got %v %v", keys, err)
	}
	if err := d.Create("b", counter{}); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if err := d.Create("a", counter{}); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := d.Create("a", counter{}); !errors.Is(err, os.ErrExist) {
		t.Fatalf("expected ErrExist, got %v", err)
	}
	keys, _ = d.Keys()
	if !reflect.DeepEqual(keys, []string{"a", "b"}) {
		t.Fatalf("unexpected keys %v", keys)
	}
	if err := d.Replace("c", counter{}); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist on replace, got %v", err)
	}
	if err := d.Replace("a", counter{Items: []string{"z"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	var c counter
	if err := d.Read("a", &c); err != nil || len(c.Items) != 1 {
		t.Fatalf("read: %+v %v", c, err)
	}
	if err := d.Remove("a"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := d.Exists("a"); ok {
		t.Fatalf("expected a removed")
	}
	if err := d.Remove("a"); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestDir_RejectsEscapingKeys(t *testing.T) {
	d := NewDir(t.TempDir())
	for _, key := range []string{"", "..", "../x", "a/b"} {
		if err := d.Write(key, counter{}); !errors.Is(err, ErrBadKey) {
			t.Fatalf("key %q: expected ErrBadKey, got %v", key, err)
		}
	}
}
