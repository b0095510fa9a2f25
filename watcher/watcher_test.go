package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.aabb")
	if err := os.WriteFile(file, []byte("box a 0 0 0 1 1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(200 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var calls int32
	changedChan := make(chan string, 10)
	err = w.Watch([]string{file}, func(path string) {
		atomic.AddInt32(&calls, 1)
		changedChan <- path
	})
	if err != nil {
		t.Fatal(err)
	}
	w.Start()

	for i := 0; i < 5; i++ {
		if err = os.WriteFile(file, []byte("box b 0 0 0 2 2 2\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	select {
	case path := <-changedChan:
		absPath, _ := filepath.Abs(file)
		if path != absPath {
			t.Fatalf("expected callback for %s; got %s", absPath, path)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change callback")
	}

	// Allow any stray timers to fire
	time.Sleep(500 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Fatalf("expected writes to be coalesced into 1 callback; got %d", got)
	}
}

func TestWatcherMissingFile(t *testing.T) {
	w, err := New(0)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	if w.debounce != DefaultDebounce {
		t.Fatalf("expected default debounce %v; got %v", DefaultDebounce, w.debounce)
	}

	err = w.Watch([]string{filepath.Join(t.TempDir(), "missing.obj")}, func(string) {})
	if err == nil {
		t.Fatal("expected an error when watching a missing file")
	}
}

func TestWatcherDetectsReplacedFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.aabb")
	if err := os.WriteFile(file, []byte("box a 0 0 0 1 1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	changedChan := make(chan string, 10)
	if err = w.Watch([]string{file}, func(path string) { changedChan <- path }); err != nil {
		t.Fatal(err)
	}
	w.Start()

	absPath, _ := filepath.Abs(file)
	for save := 0; save < 2; save++ {
		tmpFile := file + ".tmp"
		if err = os.WriteFile(tmpFile, []byte("box b 0 0 0 2 2 2\n"), 0644); err != nil {
			t.Fatal(err)
		}
		if err = os.Rename(tmpFile, file); err != nil {
			t.Fatal(err)
		}

		select {
		case path := <-changedChan:
			if path != absPath {
				t.Fatalf("[save %d] expected callback for %s; got %s", save, absPath, path)
			}
		case <-time.After(5 * time.Second):
			t.Fatalf("[save %d] timed out waiting for change callback", save)
		}

		// Let the debounce timer settle before the next save
		time.Sleep(200 * time.Millisecond)
		for len(changedChan) != 0 {
			<-changedChan
		}
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.aabb")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}

	w, err := New(50 * time.Millisecond)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var calls int32
	if err = w.Watch([]string{file}, func(string) { atomic.AddInt32(&calls, 1) }); err != nil {
		t.Fatal(err)
	}
	w.Start()

	if err = os.WriteFile(filepath.Join(dir, "other.aabb"), []byte("box c 0 0 0 1 1 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Fatalf("expected no callbacks for unwatched files; got %d", got)
	}
}
