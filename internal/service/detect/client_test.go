package detect

import (
	"reflect"
	"testing"
)

func TestNormalizeCardsSortsAndDedupes(t *testing.T) {
	in := []string{"3D", "AS", "KH", "AS", "2C", "QS", "10H", "xx"}
	want := []string{"AS", "QS", "KH", "TH", "3D", "2C"}

	got := normalizeCards(in)
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("normalizeCards = %v, want %v", got, want)
	}
}

func TestNormalizeCardsEmpty(t *testing.T) {
	if got := normalizeCards(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}
