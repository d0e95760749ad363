package format

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadOption = errors.New("bad layout option")

// Options controls the layout of written text.
type Options struct {
	// SerializeNulls writes null entries and elements instead of dropping them.
	SerializeNulls bool
	// ListEntryOnNewLine puts every list element on its own line.
	ListEntryOnNewLine bool
	// ComplexListEntryOnNewLine puts non-scalar list elements on their own
	// line.
	ComplexListEntryOnNewLine bool
	// HashEntryOnNewLine puts every map entry and record field on its own
	// line.
	HashEntryOnNewLine bool
	// ComplexKeyEntryOnNewLine is HashEntryOnNewLine for values written
	// inside a complex key.
	ComplexKeyEntryOnNewLine bool
	// CommaAfterHashEntry separates map entries with commas.
	CommaAfterHashEntry bool
	// TrailingCommas ends the last entry of a multi-line block with a comma.
	TrailingCommas bool
	// SpaceAfterAssign writes a space after ':'.
	SpaceAfterAssign bool
	// IncludeComments writes documentation attached to types and fields.
	IncludeComments bool
}

// Min is the default layout: everything on one line.
func Min() Options {
	return Options{SpaceAfterAssign: true}
}

// Pretty puts entries and nested elements on their own lines and keeps
// comments.
func Pretty() Options {
	return Options{
		ComplexListEntryOnNewLine: true,
		HashEntryOnNewLine:        true,
		SpaceAfterAssign:          true,
		IncludeComments:           true,
	}
}

// Max turns every option on.
func Max() Options {
	return Options{
		SerializeNulls:            true,
		ListEntryOnNewLine:        true,
		ComplexListEntryOnNewLine: true,
		HashEntryOnNewLine:        true,
		ComplexKeyEntryOnNewLine:  true,
		CommaAfterHashEntry:       true,
		TrailingCommas:            true,
		SpaceAfterAssign:          true,
		IncludeComments:           true,
	}
}

type toggle struct {
	name string
	get  func(*Options) *bool
}

var toggles = []toggle{
	{"serializeNulls", func(o *Options) *bool { return &o.SerializeNulls }},
	{"listEntryOnNewLine", func(o *Options) *bool { return &o.ListEntryOnNewLine }},
	{"complexListEntryOnNewLine", func(o *Options) *bool { return &o.ComplexListEntryOnNewLine }},
	{"hashEntryOnNewLine", func(o *Options) *bool { return &o.HashEntryOnNewLine }},
	{"complexKeyEntryOnNewLine", func(o *Options) *bool { return &o.ComplexKeyEntryOnNewLine }},
	{"commaAfterHashEntry", func(o *Options) *bool { return &o.CommaAfterHashEntry }},
	{"trailingCommas", func(o *Options) *bool { return &o.TrailingCommas }},
	{"spaceAfterAssign", func(o *Options) *bool { return &o.SpaceAfterAssign }},
	{"includeComments", func(o *Options) *bool { return &o.IncludeComments }},
}

var presets = map[string]func() Options{
	"min":    Min,
	"pretty": Pretty,
	"max":    Max,
}

// Names returns the option names in their canonical order.
func Names() []string {
	res := make([]string, len(toggles))
	for i := range toggles {
		res[i] = toggles[i].name
	}
	return res
}

// ParseOptions parses a comma separated list of option and preset names.
// Names are matched ignoring case. The empty string is the zero Options.
func ParseOptions(v string) (Options, error) {
	var res Options
	for _, name := range strings.Split(v, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if p, ok := presets[strings.ToLower(name)]; ok {
			res = res.Or(p())
			continue
		}
		found := false
		for i := range toggles {
			if strings.EqualFold(toggles[i].name, name) {
				*toggles[i].get(&res) = true
				found = true
				break
			}
		}
		if !found {
			return Options{}, fmt.Errorf("%w: %q", ErrBadOption, name)
		}
	}
	return res, nil
}

// Or returns the options set in o or in other.
func (o Options) Or(other Options) Options {
	for i := range toggles {
		if *toggles[i].get(&other) {
			*toggles[i].get(&o) = true
		}
	}
	return o
}

func (o Options) String() string {
	d, _ := o.MarshalText()
	return string(d)
}

func (o Options) MarshalText() ([]byte, error) {
	var names []string
	for i := range toggles {
		if *toggles[i].get(&o) {
			names = append(names, toggles[i].name)
		}
	}
	return []byte(strings.Join(names, ",")), nil
}

func (o *Options) UnmarshalText(d []byte) error {
	po, err := ParseOptions(string(d))
	if err != nil {
		return err
	}
	*o = po
	return nil
}
