// Package style holds the contracts between the transition core and the
// environment that renders styles: property application, completion
// notifications, presentation markers and vendor capability.
package style

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
)

var ErrUnknownVendor = errors.New("style: unknown vendor")

// Element is a styled target. Implementations deliver exactly one
// TransitionEvent per completed timed property change.
type Element interface {
	Get(property string) string
	Set(property, value string)
	AddMarker(markers ...string)
	RemoveMarker(markers ...string)
	HasMarker(marker string) bool
	Markers() []string
	// Append creates a child element carrying markers.
	Append(markers ...string) Element
	Children() []Element
	Detach()
	OnTransitionEnd(fn func(TransitionEvent)) (unsubscribe func())
}

type TransitionEvent struct {
	Target Element
	// Property is the name as it appeared in the transition declaration.
	Property string
	Elapsed  time.Duration
	// Synthetic is set when a machine completes without a notification from
	// the element.
	Synthetic bool
}

// Vendor is the property prefix negotiated once at startup. The zero value
// is unprefixed.
type Vendor struct {
	prefix string
}

var (
	Unprefixed = Vendor{}
	Webkit     = Vendor{prefix: "webkit"}
	Moz        = Vendor{prefix: "moz"}
)

var prefixes = []string{Webkit.prefix, Moz.prefix}

func (v Vendor) Prefix() string {
	return v.prefix
}

func (v Vendor) String() string {
	if v.prefix == "" {
		return "none"
	}
	return v.prefix
}

// Property is the scripting name of property, e.g. WebkitOpacity.
func (v Vendor) Property(property string) string {
	if v.prefix == "" {
		return property
	}
	return capitalize(v.prefix) + capitalize(camel(property))
}

// TransitionProperty is the property holding transition declarations.
func (v Vendor) TransitionProperty() string {
	return v.Property("transition")
}

// CSSProperty is the declaration name of property, e.g. -webkit-opacity.
func (v Vendor) CSSProperty(property string) string {
	if v.prefix == "" {
		return property
	}
	return "-" + v.prefix + "-" + property
}

var translateZ = regexp.MustCompile(`\stranslateZ\(.+\)`)

// Filter removes value components the vendor cannot render.
func (v Vendor) Filter(value string) string {
	if v == Moz {
		return translateZ.ReplaceAllString(value, "")
	}
	return value
}

// Detect resolves the vendor by probing which transition property the
// environment supports.
func Detect(supports func(property string) bool) Vendor {
	switch {
	case supports == nil, supports("transition"):
		return Unprefixed
	case supports(Webkit.TransitionProperty()):
		return Webkit
	case supports(Moz.TransitionProperty()):
		return Moz
	default:
		return Unprefixed
	}
}

func ParseVendor(name string) (Vendor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return Unprefixed, nil
	case Webkit.prefix:
		return Webkit, nil
	case Moz.prefix:
		return Moz, nil
	default:
		return Unprefixed, fmt.Errorf("%w %q", ErrUnknownVendor, name)
	}
}

// Normalize maps scripting and declaration names, prefixed or not, to one
// unprefixed kebab-case name: WebkitOpacity, -webkit-opacity and opacity
// all become opacity.
func Normalize(property string) string {
	var builder strings.Builder
	for i, r := range property {
		if unicode.IsUpper(r) {
			if i > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(unicode.ToLower(r))
			continue
		}
		builder.WriteRune(r)
	}
	name := strings.TrimPrefix(builder.String(), "-")
	for _, prefix := range prefixes {
		name = strings.TrimPrefix(name, prefix+"-")
	}
	return name
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func camel(property string) string {
	parts := strings.Split(property, "-")
	for i := 1; i < len(parts); i++ {
		parts[i] = capitalize(parts[i])
	}
	return strings.Join(parts, "")
}
