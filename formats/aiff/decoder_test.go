// SPDX-License-Identifier: EPL-2.0

package aiff_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ik5/lc3bridge/formats/aiff"
)

func TestDecode_NotAiff(t *testing.T) {
	t.Parallel()

	tests := map[string][]byte{
		"empty": nil,
		"wav":   []byte("RIFF\x24\x00\x00\x00WAVEfmt \x10\x00\x00\x00"),
		"text":  []byte("hello, this is not audio at all"),
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			_, err := aiff.Decoder{}.Decode(bytes.NewReader(data))
			assert.ErrorIs(t, err, aiff.ErrNotAiffFile)
		})
	}
}
