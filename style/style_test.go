package style_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stateforward/go-kenburns/style"
)

func TestVendor(t *testing.T) {
	assert.Equal(t, "opacity", style.Unprefixed.Property("opacity"))
	assert.Equal(t, "transition", style.Unprefixed.TransitionProperty())
	assert.Equal(t, "opacity", style.Unprefixed.CSSProperty("opacity"))

	assert.Equal(t, "WebkitOpacity", style.Webkit.Property("opacity"))
	assert.Equal(t, "WebkitTransition", style.Webkit.TransitionProperty())
	assert.Equal(t, "-webkit-opacity", style.Webkit.CSSProperty("opacity"))
	assert.Equal(t, "WebkitAnimationDuration", style.Webkit.Property("animation-duration"))
	assert.Equal(t, "MozTransition", style.Moz.TransitionProperty())
}

func TestVendorFilter(t *testing.T) {
	value := "scale(1.2) translateZ(0)"
	assert.Equal(t, "scale(1.2)", style.Moz.Filter(value))
	assert.Equal(t, value, style.Webkit.Filter(value))
	assert.Equal(t, "1", style.Moz.Filter("1"))
}

func TestDetect(t *testing.T) {
	only := func(name string) func(string) bool {
		return func(property string) bool { return property == name }
	}
	assert.Equal(t, style.Unprefixed, style.Detect(only("transition")))
	assert.Equal(t, style.Webkit, style.Detect(only("WebkitTransition")))
	assert.Equal(t, style.Moz, style.Detect(only("MozTransition")))
	assert.Equal(t, style.Unprefixed, style.Detect(only("nothing")))
	assert.Equal(t, style.Unprefixed, style.Detect(nil))
}

func TestParseVendor(t *testing.T) {
	for name, want := range map[string]style.Vendor{"": style.Unprefixed, "none": style.Unprefixed, "WebKit": style.Webkit, "moz": style.Moz} {
		got, err := style.ParseVendor(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := style.ParseVendor("ms")
	assert.ErrorIs(t, err, style.ErrUnknownVendor)
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"opacity":                    "opacity",
		"WebkitOpacity":              "opacity",
		"-webkit-opacity":            "opacity",
		"MozTransition":              "transition",
		"backgroundImage":            "background-image",
		"-webkit-animation-duration": "animation-duration",
	}
	for in, want := range cases {
		assert.Equal(t, want, style.Normalize(in), in)
	}
}
