package treefmt

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() Tree {
	return Tree{
		Version: 1,
		Root: Node{
			Type: KindElement,
			Tag:  "ul",
			Attrs: []Attr{
				{Name: "class", Value: "items"},
			},
			Children: []Node{
				{Type: KindValue, Key: "a", Value: "first"},
				{Type: KindValue, Key: "b", Value: "second"},
				{Type: KindEmpty},
			},
		},
	}
}

func TestWriteRead_Roundtrip(t *testing.T) {
	var buf bytes.Buffer
	want := sampleTree()

	writtenDigest, err := Write(&buf, want)
	require.NoError(t, err)

	got, readDigest, err := Read(&buf)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(want, got))
	assert.Equal(t, writtenDigest, readDigest)
}

func TestWrite_IsDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	digestA, err := Write(&a, sampleTree())
	require.NoError(t, err)
	digestB, err := Write(&b, sampleTree())
	require.NoError(t, err)

	assert.Equal(t, a.Bytes(), b.Bytes(), "equal trees must serialize to equal bytes")
	assert.Equal(t, digestA, digestB)
}

func TestWrite_DifferentTreesDifferentDigests(t *testing.T) {
	var a, b bytes.Buffer
	digestA, err := Write(&a, sampleTree())
	require.NoError(t, err)

	other := sampleTree()
	other.Root.Children[0].Value = "changed"
	digestB, err := Write(&b, other)
	require.NoError(t, err)

	assert.NotEqual(t, digestA, digestB)
}

func TestRead_CorruptBodyFailsDigest(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, sampleTree())
	require.NoError(t, err)

	data := buf.Bytes()
	// Flip the last body byte, just ahead of the 32-byte digest trailer.
	data[len(data)-33] ^= 0xff

	_, _, err = Read(bytes.NewReader(data))
	var digestErr *DigestError
	require.ErrorAs(t, err, &digestErr)
	assert.NotEqual(t, digestErr.Want, digestErr.Got)
}

func TestRead_BadMagic(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, sampleTree())
	require.NoError(t, err)

	data := buf.Bytes()
	data[0] = 'X'

	_, _, err = Read(bytes.NewReader(data))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestRead_UnsupportedVersion(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, sampleTree())
	require.NoError(t, err)

	data := buf.Bytes()
	data[4], data[5] = 0xff, 0xff

	_, _, err = Read(bytes.NewReader(data))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestRead_OversizedBodyLengthIsRejected(t *testing.T) {
	// A well-formed preamble whose length field claims an absurd body must
	// fail cleanly before any allocation happens.
	var buf bytes.Buffer
	buf.WriteString(Magic)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, Version))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(1)<<62))

	_, _, err := Read(bytes.NewReader(buf.Bytes()))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestRead_BodyLengthJustOverLimitIsRejected(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString(Magic)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, Version))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint16(0)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(maxBodyLen+1)))

	_, _, err := Read(bytes.NewReader(buf.Bytes()))
	var formatErr *FormatError
	require.ErrorAs(t, err, &formatErr)
}

func TestRead_TruncatedInput(t *testing.T) {
	var buf bytes.Buffer
	_, err := Write(&buf, sampleTree())
	require.NoError(t, err)

	for _, cut := range []int{0, 8, 17, buf.Len() - 5} {
		_, _, err := Read(bytes.NewReader(buf.Bytes()[:cut]))
		var formatErr *FormatError
		require.ErrorAs(t, err, &formatErr, "cut at %d", cut)
	}
}
