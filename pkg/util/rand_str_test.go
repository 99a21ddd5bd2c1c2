package util

import (
	"strings"
	"sync"
	"testing"
)

func TestRandStrLengthAndCharset(t *testing.T) {
	for _, n := range []int{1, 10, 64} {
		s := RandStr(n)
		if len(s) != n {
			t.Errorf("RandStr(%d) returned %d bytes", n, len(s))
		}
		for _, r := range s {
			if !strings.ContainsRune(charset, r) {
				t.Errorf("RandStr(%d) produced %q outside the charset", n, r)
			}
		}
	}
}

func TestRandStrConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if s := RandStr(10); len(s) != 10 {
					t.Errorf("got %d bytes, want 10", len(s))
				}
			}
		}()
	}
	wg.Wait()
}
