package typename

import (
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type counter struct{ N int }

func TestFor(t *testing.T) {
	require.Equal(t, "github.com/codewandler/sactor-go/internal/typename.counter", For[counter]())
	require.Equal(t, For[counter](), For[*counter](), "pointers are named after their element")
}

func TestOf_Builtin(t *testing.T) {
	require.Equal(t, "int", Of(reflect.TypeFor[int]()))
	require.Equal(t, "struct {}", Of(reflect.TypeFor[struct{}]()))
	require.Equal(t, "[]string", Of(reflect.TypeFor[[]string]()))
}

func TestOf_Nil(t *testing.T) {
	require.Equal(t, "", Of(nil))
}

func TestFor_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				_ = For[counter]()
				_ = For[int]()
			}
		}()
	}
	wg.Wait()
}
