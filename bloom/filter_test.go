package bloom_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/wikiscrape/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://fr.wikipedia.org/wiki/Rust"))

	f.Add("https://fr.wikipedia.org/wiki/Rust")

	assert.True(t, f.Test("https://fr.wikipedia.org/wiki/Rust"))
	assert.False(t, f.Test("https://fr.wikipedia.org/wiki/Go"))
}

func TestFilter_UsesDedupKey(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	f.Add("https://x/wiki/Foo")

	assert.True(t, f.Test("https://x/wiki/Foo/"))
	assert.True(t, f.Test("HTTPS://X/WIKI/FOO"))
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(10, 0.001)

	assert.False(t, f.Seen("https://fr.wikipedia.org/wiki/Rust"))
	assert.True(t, f.Seen("https://fr.wikipedia.org/wiki/Rust/"))
	assert.False(t, f.Seen("https://fr.wikipedia.org/wiki/Go"))
}

func TestFilter_ZeroCapacity(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(0, 0.01)

	f.Add("https://fr.wikipedia.org/wiki/Rust")

	assert.True(t, f.Test("https://fr.wikipedia.org/wiki/Rust"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://fr.wikipedia.org/wiki/A")
	f.Add("https://fr.wikipedia.org/wiki/B")
	f.Add("https://fr.wikipedia.org/wiki/C")
	f.Add("https://fr.wikipedia.org/wiki/c/")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)

	for i := range numItems {
		f.Add(fmt.Sprintf("https://fr.wikipedia.org/wiki/Added_%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://fr.wikipedia.org/wiki/Missing_%d", i)) {
			falsePositives++
		}
	}

	// Allow up to 2% to account for statistical variance
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
