package validation

import (
	"errors"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name"  binding:"required,notblank"`
	Level int     `json:"level" binding:"min=0,max=100"`
	URL   string  `json:"url"   binding:"omitempty,httpurl"`
	Body  *string `json:"body"  binding:"omitempty,richtext"`
}

func TestRegister_CustomRulesAndMessages(t *testing.T) {
	Register()
	Register()

	require.NoError(t, binding.Validator.ValidateStruct(&sample{Name: "Go", Level: 50, URL: "https://go.dev"}))

	cases := map[string]struct {
		in   sample
		want string
	}{
		"required": {sample{Level: 1}, "name is required"},
		"max":      {sample{Name: "x", Level: 101}, "level must be at most 100"},
		"min":      {sample{Name: "x", Level: -1}, "level must be at least 0"},
		"url":      {sample{Name: "x", URL: "javascript:alert(1)"}, "url must be an http(s) URL"},
		"blank":    {sample{Name: " \t "}, "name is required"},
		"richtext": {sample{Name: "x", Body: ptr("<script>x</script>")}, "body is required"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tc.in)
			require.Error(t, err)
			require.Equal(t, tc.want, Message(err))
		})
	}
}

func ptr(s string) *string { return &s }

func TestRegister_RichTextWithContentPasses(t *testing.T) {
	Register()
	require.NoError(t, binding.Validator.ValidateStruct(&sample{Name: "x", Body: ptr("<p>kept</p>")}))
}

func TestIsHTTPURL(t *testing.T) {
	require.True(t, IsHTTPURL("http://example.com/a"))
	require.False(t, IsHTTPURL("example.com"))
	require.False(t, IsHTTPURL("ftp://example.com"))
	require.False(t, IsHTTPURL(""))
}

func TestMessage_NonValidationError(t *testing.T) {
	require.Equal(t, "Invalid request body", Message(errors.New("EOF")))
}
