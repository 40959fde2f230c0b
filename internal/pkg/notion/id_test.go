package notion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPageID(t *testing.T) {
	cases := []struct {
		link string
		want string
		ok   bool
	}{
		{"https://www.notion.so/acme/Demo-Writeup-0123456789ABCDEF0123456789abcdef?pvs=4", "0123456789abcdef0123456789abcdef", true},
		{"https://acme.notion.site/1a2b3c4d-1a2b-4c3d-8e9f-1a2b3c4d5e6f", "1a2b3c4d1a2b4c3d8e9f1a2b3c4d5e6f", true},
		{"0123456789abcdef0123456789abcdef", "0123456789abcdef0123456789abcdef", true},
		{"https://notion.so/x-1a2b3c4d-1a2b-4c3d-8e9f-1a2b3c4d5e6f-ffffffffffffffffffffffffffffffff", "ffffffffffffffffffffffffffffffff", true},
		{"", "", false},
		{"https://example.com/no-id-here", "", false},
		{"https://notion.so/0123456789abcdef", "", false},
	}
	for _, tc := range cases {
		got, ok := ExtractPageID(tc.link)
		require.Equal(t, tc.ok, ok, tc.link)
		require.Equal(t, tc.want, got, tc.link)
	}
}

func TestDashedID(t *testing.T) {
	require.Equal(t, "01234567-89ab-cdef-0123-456789abcdef", DashedID("0123456789abcdef0123456789abcdef"))
	require.Equal(t, "short", DashedID("short"))
}
