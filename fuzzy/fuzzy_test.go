package fuzzy_test

import (
	"testing"

	"bookhound/fuzzy"

	"github.com/stretchr/testify/assert"
)

func candidates(names ...string) []fuzzy.Candidate[string] {
	cs := make([]fuzzy.Candidate[string], len(names))
	for i, n := range names {
		cs[i] = fuzzy.Candidate[string]{Value: n, Name: n}
	}
	return cs
}

func TestRatio(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, fuzzy.Ratio("송파글마루도서관", "송파글마루도서관"))
	assert.Equal(t, 1.0, fuzzy.Ratio("", ""))
	assert.Equal(t, 0.0, fuzzy.Ratio("abc", "xyz"))
	assert.InDelta(t, 0.8, fuzzy.Ratio("abcde", "abcd "), 0.001)
}

func TestSelectClosest(t *testing.T) {
	t.Parallel()

	t.Run("picks exact match", func(t *testing.T) {
		t.Parallel()

		cs := candidates("거마도서관", "돌마리도서관", "송파글마루도서관")
		assert.Equal(t, "돌마리도서관", fuzzy.SelectClosest(cs, "돌마리도서관"))
	})

	t.Run("tolerates decorated names", func(t *testing.T) {
		t.Parallel()

		cs := candidates("송파어린이도서관", "송파어린이영어도서관", "가락몰도서관")
		assert.Equal(t, "송파어린이영어도서관", fuzzy.SelectClosest(cs, "[분관] 송파어린이영어도서관"))
	})

	t.Run("tie broken by first occurrence", func(t *testing.T) {
		t.Parallel()

		cs := candidates("aaa", "aaa")
		cs[1].Value = "second"
		assert.Equal(t, "aaa", fuzzy.SelectClosest(cs, "aaa"))
	})

	t.Run("total over non-empty sets", func(t *testing.T) {
		t.Parallel()

		// Even a target sharing nothing with any candidate returns a member.
		cs := candidates("하늘샘작은도서관", "파랑새작은도서관")
		got := fuzzy.SelectClosest(cs, "zzz")
		assert.Contains(t, []string{"하늘샘작은도서관", "파랑새작은도서관"}, got)
	})

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		cs := candidates("북아현 마을북카페", "논골작은도서관")
		first := fuzzy.SelectClosest(cs, "북아현마을북카페")
		assert.Equal(t, first, fuzzy.SelectClosest(cs, "북아현마을북카페"))
	})

	t.Run("panics on empty candidate set", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			fuzzy.SelectClosest[string](nil, "anything")
		})
	})
}
