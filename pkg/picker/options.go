package picker

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/picker/pkg/dom"
)

// OptionsAttr is the input attribute holding per-element options.
const OptionsAttr = "data-picker-options"

// Default toggle captions.
const (
	DefaultOnLabel  = "ON"
	DefaultOffLabel = "OFF"
)

// Labels are the toggle-mode captions.
type Labels struct {
	On  string `yaml:"on"`
	Off string `yaml:"off"`
}

// Options is a fully resolved picker configuration.
type Options struct {
	// CustomClass is added to the container at bind time. It may hold
	// several space-separated classes.
	CustomClass string
	// Toggle enables the two-caption rendering.
	Toggle bool
	// Labels are the captions used when Toggle is set.
	Labels Labels
}

// DefaultOptions returns the built-in configuration.
func DefaultOptions() Options {
	return Options{Labels: Labels{On: DefaultOnLabel, Off: DefaultOffLabel}}
}

// Overrides is one configuration layer. Nil fields leave the value from
// lower layers in place.
type Overrides struct {
	CustomClass *string         `yaml:"customClass,omitempty"`
	Toggle      *bool           `yaml:"toggle,omitempty"`
	Labels      *LabelOverrides `yaml:"labels,omitempty"`
}

// LabelOverrides overrides individual captions.
type LabelOverrides struct {
	On  *string `yaml:"on,omitempty"`
	Off *string `yaml:"off,omitempty"`
}

// Apply returns o with every field set in ov replaced.
func (o Options) Apply(ov Overrides) Options {
	if ov.CustomClass != nil {
		o.CustomClass = *ov.CustomClass
	}
	if ov.Toggle != nil {
		o.Toggle = *ov.Toggle
	}
	if ov.Labels != nil {
		if ov.Labels.On != nil {
			o.Labels.On = *ov.Labels.On
		}
		if ov.Labels.Off != nil {
			o.Labels.Off = *ov.Labels.Off
		}
	}
	return o
}

// Option adjusts the call-level layer passed to Bind.
type Option func(*Overrides)

// WithCustomClass sets the container's custom class.
func WithCustomClass(class string) Option {
	return func(ov *Overrides) { ov.CustomClass = &class }
}

// WithToggle enables or disables toggle rendering.
func WithToggle(on bool) Option {
	return func(ov *Overrides) { ov.Toggle = &on }
}

// WithLabels sets both toggle captions.
func WithLabels(on, off string) Option {
	return func(ov *Overrides) {
		ov.Labels = &LabelOverrides{On: &on, Off: &off}
	}
}

func collect(opts []Option) Overrides {
	var ov Overrides
	for _, opt := range opts {
		if opt != nil {
			opt(&ov)
		}
	}
	return ov
}

// DefaultsProvider supplies the lowest configuration layer.
type DefaultsProvider interface {
	Defaults() Options
}

// StaticDefaults is a DefaultsProvider returning a fixed value.
type StaticDefaults Options

// Defaults implements DefaultsProvider.
func (s StaticDefaults) Defaults() Options {
	return Options(s)
}

// DefaultsFunc adapts a function to DefaultsProvider.
type DefaultsFunc func() Options

// Defaults implements DefaultsProvider.
func (f DefaultsFunc) Defaults() Options {
	return f()
}

// ParseOverrides decodes a JSON or YAML flow mapping such as the value of
// the data-picker-options attribute.
func ParseOverrides(data string) (Overrides, error) {
	var ov Overrides
	if strings.TrimSpace(data) == "" {
		return ov, nil
	}
	if err := yaml.Unmarshal([]byte(data), &ov); err != nil {
		return Overrides{}, fmt.Errorf("failed to decode %s: %w", OptionsAttr, err)
	}
	return ov, nil
}

func elementOverrides(input *html.Node) (Overrides, error) {
	data, ok := dom.LookupAttr(input, OptionsAttr)
	if !ok {
		return Overrides{}, nil
	}
	return ParseOverrides(data)
}

// resolveOptions merges the three layers in increasing precedence. Blank
// captions fall back to the built-in ones.
func resolveOptions(defaults Options, call, element Overrides) Options {
	o := defaults.Apply(call).Apply(element)
	if o.Labels.On == "" {
		o.Labels.On = DefaultOnLabel
	}
	if o.Labels.Off == "" {
		o.Labels.Off = DefaultOffLabel
	}
	return o
}
