package pricing

import (
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	apperrors "tournament-reg/internal/errors"
)

func TestParseKey(t *testing.T) {
	cases := []struct {
		in   string
		want EventKey
	}{
		{"u12_girls_Singles", EventKey{Category: "u12_girls", EventType: "Singles"}},
		{"open_beginners_men_Doubles", EventKey{Category: "open_beginners_men", EventType: "Doubles"}},
		{"open_mixed_Mixed", EventKey{Category: "open_mixed", EventType: "Mixed"}},
		{"Singles", EventKey{EventType: "Singles"}},
		{"", EventKey{}},
		{"u12_girls_", EventKey{Category: "u12_girls"}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			require.Equal(t, tc.want, ParseKey(tc.in))
		})
	}
}

func TestEventKey_Label(t *testing.T) {
	require.Equal(t, "OPEN BEGINNERS MEN - Doubles", ParseKey("open_beginners_men_Doubles").Label())
	require.Equal(t, "35PLUS WOMEN - Mixed", ParseKey("35plus_women_Mixed").Label())
}

func TestNeedsPartner(t *testing.T) {
	assert.False(t, NeedsPartner(Singles))
	assert.True(t, NeedsPartner(Doubles))
	assert.True(t, NeedsPartner(Mixed))
	assert.False(t, NeedsPartner("doubles"), "event types are case-sensitive")
}

func TestComputeTotal_Examples(t *testing.T) {
	table := NewDefaultTable()

	require.Equal(t, 1500, ComputeTotal(table, []string{"open_mixed_Mixed"}))
	require.Equal(t, 2350, ComputeTotal(table, []string{"u12_girls_Singles", "u12_girls_Doubles"}))
	require.Equal(t, 0, ComputeTotal(table, nil))
}

func TestComputeTotal_UnknownEntriesContributeZero(t *testing.T) {
	table := NewDefaultTable()

	require.Equal(t, 850, ComputeTotal(table, []string{"u12_girls_Singles", "u12_girls_Mixed"}))
	require.Equal(t, 850, ComputeTotal(table, []string{"nope_Singles", "u19_boys_Singles"}))
	require.Equal(t, 0, ComputeTotal(table, []string{"garbage", "", "_"}))
}

func TestPriceTable_Update(t *testing.T) {
	table := NewDefaultTable()

	require.NoError(t, table.Update("open_mixed", Mixed, 1800))
	require.Equal(t, 1800, ComputeTotal(table, []string{"open_mixed_Mixed"}))

	err := table.Update("open_mixed", Singles, 900)
	require.True(t, errors.Is(err, apperrors.ErrUnknownEvent))

	err = table.Update("curling", Singles, 900)
	require.True(t, errors.Is(err, apperrors.ErrUnknownEvent))

	err = table.Update("open_mixed", Mixed, 0)
	require.True(t, errors.Is(err, apperrors.ErrInvalidPrice))
}

func TestPriceTable_SnapshotIsDetached(t *testing.T) {
	table := NewDefaultTable()
	snap := table.Snapshot()
	snap["u12_boys"][Singles] = 1

	p, ok := table.Price(EventKey{Category: "u12_boys", EventType: Singles})
	require.True(t, ok)
	require.Equal(t, 850, p)
}

func TestPriceTable_ConcurrentUpdateAndRead(t *testing.T) {
	table := NewDefaultTable()
	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(2)
		go func(price int) {
			defer wg.Done()
			_ = table.Update("u12_boys", Singles, price)
		}(i)
		go func() {
			defer wg.Done()
			_ = ComputeTotal(table, []string{"u12_boys_Singles"})
		}()
	}
	wg.Wait()
}

func validKeys() []string {
	var keys []string
	for cat, events := range DefaultPrices() {
		for ev := range events {
			keys = append(keys, cat+Separator+ev)
		}
	}
	sort.Strings(keys)
	return keys
}

// Any selection of up to three valid keys totals the sum of its lookups,
// whatever the order.
func TestComputeTotal_SumOfLookupsProperty(t *testing.T) {
	table := NewDefaultTable()
	prices := DefaultPrices()
	keys := validKeys()

	rapid.Check(t, func(r *rapid.T) {
		selected := rapid.SliceOfNDistinct(rapid.SampledFrom(keys), 0, 3, rapid.ID[string]).Draw(r, "selected")

		want := 0
		for _, s := range selected {
			k := ParseKey(s)
			want += prices[k.Category][k.EventType]
		}
		require.Equal(r, want, ComputeTotal(table, selected))

		shuffled := rapid.Permutation(selected).Draw(r, "shuffled")
		require.Equal(r, want, ComputeTotal(table, shuffled))
	})
}

func TestComputeTotal_UnknownKeyProperty(t *testing.T) {
	table := NewDefaultTable()
	keys := validKeys()

	rapid.Check(t, func(r *rapid.T) {
		valid := rapid.SampledFrom(keys).Draw(r, "valid")
		bogus := rapid.StringMatching(`zz[a-z]{1,6}_(Singles|Doubles|Mixed|Triples)`).Draw(r, "bogus")

		base := ComputeTotal(table, []string{valid})
		require.Equal(r, base, ComputeTotal(table, []string{valid, bogus}))
		require.Equal(r, 0, ComputeTotal(table, []string{bogus}))
	})
}
