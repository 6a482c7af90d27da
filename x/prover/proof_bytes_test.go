package prover

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProofBytesUnmarshal(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  []byte
	}{
		{"hex", `"0x0102ff"`, []byte{1, 2, 255}},
		{"base64", `"AQID"`, []byte{1, 2, 3}},
		{"int array", `[1,2,3]`, []byte{1, 2, 3}},
		{"null", `null`, nil},
		{"empty string", `""`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var p ProofBytes
			require.NoError(t, json.Unmarshal([]byte(tc.input), &p))
			require.Equal(t, tc.want, p.Bytes())
		})
	}

	var p ProofBytes
	require.Error(t, json.Unmarshal([]byte(`[1,999]`), &p))
	require.Error(t, json.Unmarshal([]byte(`true`), &p))
}

func TestProofBytesMarshalRoundTrip(t *testing.T) {
	p := ProofBytes{0xde, 0xad}
	out, err := json.Marshal(p)
	require.NoError(t, err)
	require.Equal(t, `"0xdead"`, string(out))

	var back ProofBytes
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, p.Bytes(), back.Bytes())
}

func TestProofBytesClone(t *testing.T) {
	p := ProofBytes{1, 2}
	clone := p.Clone()
	clone[0] = 9
	require.Equal(t, byte(1), p[0])
	require.Nil(t, ProofBytes(nil).Clone())
}
