package sanitize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "   ", ""},
		{"plain text escaped", "a < b & c", "a &lt; b &amp; c"},
		{"formatting kept", "<p>Hi <strong>there</strong><br></p>", "<p>Hi <strong>there</strong><br></p>"},
		{"script dropped with content", "<p>x</p><script>alert(1)</script>", "<p>x</p>"},
		{"style and iframe dropped", `<style>p{}</style><iframe src="https://x"></iframe>ok`, "ok"},
		{"event handlers dropped", `<p onclick="evil()" class="lead">t</p>`, `<p class="lead">t</p>`},
		{"unknown tags unwrapped", "<section><em>kept</em></section>", "<em>kept</em>"},
		{"link hardened", `<a href="https://example.com" target="_blank">e</a>`, `<a href="https://example.com" rel="noreferrer">e</a>`},
		{"javascript link unwrapped", `<a href="javascript:alert(1)">e</a>`, `e`},
		{"mailto allowed", `<a href="mailto:me@example.com">m</a>`, `<a href="mailto:me@example.com" rel="noreferrer">m</a>`},
		{"img attrs", `<img src="https://cdn/x.png" alt="x" onerror="e()">`, `<img src="https://cdn/x.png" alt="x">`},
		{"data img removed", `<img src="data:image/png;base64,AAAA">`, ``},
		{"comments dropped", "a<!-- hidden -->b", "ab"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, HTML(tc.in))
		})
	}
}

func TestBlank(t *testing.T) {
	for _, in := range []string{"", "   ", "<p> </p>", "<script>x</script>", "<p><br></p>"} {
		require.True(t, Blank(in), in)
	}
	for _, in := range []string{"x", "<p>hi</p>", `<img src="https://cdn/x.png">`, "<hr>"} {
		require.False(t, Blank(in), in)
	}
}
