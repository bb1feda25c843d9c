package monitoring

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetLogger(t *testing.T) {
	orig := Logf
	t.Cleanup(func() { Logf = orig })

	var got []string
	SetLogger(func(format string, v ...interface{}) {
		got = append(got, fmt.Sprintf(format, v...))
	})
	Logf("link %s lost", "demo")
	assert.Equal(t, []string{"link demo lost"}, got)

	SetLogger(nil)
	Logf("dropped")
	assert.Len(t, got, 1)
}
