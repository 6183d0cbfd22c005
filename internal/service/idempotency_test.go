package service

import (
	"fmt"
	"testing"
)

func TestTokenIndex(t *testing.T) {
	idx := NewTokenIndex(1000)

	if idx.MaybeSeen("tok-1") {
		t.Error("fresh index reported a token as seen")
	}

	idx.Add("tok-1")
	if !idx.MaybeSeen("tok-1") {
		t.Error("added token not reported as seen")
	}
}

func TestTokenIndexNoFalseNegatives(t *testing.T) {
	idx := NewTokenIndex(10_000)

	for i := 0; i < 5000; i++ {
		idx.Add(fmt.Sprintf("token-%d", i))
	}
	for i := 0; i < 5000; i++ {
		if !idx.MaybeSeen(fmt.Sprintf("token-%d", i)) {
			t.Fatalf("token-%d was added but reported unseen", i)
		}
	}
}
