package pool

import (
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParallelize(t *testing.T) {
	pools := map[string]*Pool{"nil": nil, "workers": NewPool(2)}
	for name, pl := range pools {
		pl := pl
		t.Run(name, func(t *testing.T) {
			results := pl.Parallelize(10, func(i int) interface{} { return i * i })
			require.Len(t, results, 10)
			for i, r := range results {
				assert.Equal(t, i*i, r.(int))
			}
		})
	}
	pools["workers"].TearDown()
}

func TestSearch(t *testing.T) {
	pools := map[string]*Pool{"nil": nil, "workers": NewPool(2)}
	for name, pl := range pools {
		pl := pl
		t.Run(name, func(t *testing.T) {
			next := NewLockedReader(rand.Reader)
			results := pl.Search(3, func() interface{} {
				b := make([]byte, 1)
				if _, err := next.Read(b); err != nil {
					return nil
				}
				// reject half the candidates to exercise retries
				if b[0]&1 == 0 {
					return nil
				}
				return int(b[0])
			})
			require.Len(t, results, 3)
			for _, r := range results {
				assert.NotNil(t, r)
				assert.Equal(t, 1, r.(int)&1)
			}
		})
	}
	pools["workers"].TearDown()
}

func TestLockedReader(t *testing.T) {
	r := NewLockedReader(rand.Reader)
	done := make(chan []byte, 8)
	for i := 0; i < 8; i++ {
		go func() {
			buf := make([]byte, 16)
			_, err := r.Read(buf)
			assert.NoError(t, err)
			done <- buf
		}()
	}
	var outputs []string
	for i := 0; i < 8; i++ {
		outputs = append(outputs, string(<-done))
	}
	sort.Strings(outputs)
	for i := 1; i < len(outputs); i++ {
		assert.NotEqual(t, outputs[i-1], outputs[i], "concurrent reads should not repeat")
	}
}
