package keccak

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestSum256KnownVectors tests Keccak-256 against published reference
// vectors.  The vectors distinguish original Keccak padding from SHA3-256:
// a SHA3 implementation would fail every case.
func TestSum256KnownVectors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "empty",
			input: "",
			want:  "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			name:  "hello world",
			input: "hello world",
			want:  "47173285a8d7341e5e972fc677286384f802f8ef42a5ec5f03bbfa254cb01fab",
		},
		{
			name:  "abc",
			input: "abc",
			want:  "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sum256([]byte(tt.input))
			require.Equal(t, tt.want, hex.EncodeToString(got))
		})
	}
}

// TestSum512KnownVector tests Keccak-512 against the empty-input reference
// vector.
func TestSum512KnownVector(t *testing.T) {
	want := "0eab42de4c3ceb9235fc91acffe746b29c29a8c366b7c60e4e67c466f36a4304" +
		"c00fa9caf9d87976ba469bcbe06713b435f091ef2769fb160cdab33d3670680e"
	require.Equal(t, want, hex.EncodeToString(Sum512(nil)))
}

// TestSum256Deterministic tests that repeated hashing of the same input
// yields identical output.
func TestSum256Deterministic(t *testing.T) {
	input := []byte("determinism check")
	first := Sum256(input)
	for i := 0; i < 16; i++ {
		require.Equal(t, first, Sum256(input))
	}
}

// TestSum256MultiChunk tests that hashing split input equals hashing the
// concatenation.
func TestSum256MultiChunk(t *testing.T) {
	whole := Sum256([]byte("hello world"))
	split := Sum256([]byte("hello "), []byte("world"))
	require.Equal(t, whole, split)
}

// TestHash256MatchesSum256 tests the Digest-returning variant against the
// slice-returning one.
func TestHash256MatchesSum256(t *testing.T) {
	input := []byte("hello world")
	d := Hash256(input)
	require.Equal(t, Sum256(input), d.Bytes())
	require.Equal(t, "0x"+hex.EncodeToString(d.Bytes()), d.Hex())
	require.Len(t, d.Bytes(), DigestLength)
}

// TestStateStreaming tests that incremental writes to a State produce the
// same digest as a one-shot call.
func TestStateStreaming(t *testing.T) {
	d := New256()
	d.Write([]byte("hello "))
	d.Write([]byte("world"))

	out := make([]byte, DigestLength)
	d.Read(out)
	require.Equal(t, Sum256([]byte("hello world")), out)
}
