package cli

import (
	"strings"

	"github.com/alexanderramin/zibox/internal/domain"
	"github.com/spf13/pflag"
)

// modeValue is a pflag.Value accepting schedule mode names and aliases.
type modeValue domain.ScheduleMode

var _ pflag.Value = (*modeValue)(nil)

func (v *modeValue) String() string { return string(*v) }
func (v *modeValue) Type() string   { return "mode" }

func (v *modeValue) Set(s string) error {
	m, err := domain.ParseScheduleMode(s)
	if err != nil {
		return err
	}
	*v = modeValue(m)
	return nil
}

// formatValue is a pflag.Value accepting output format names and aliases.
type formatValue domain.OutputFormat

var _ pflag.Value = (*formatValue)(nil)

func (v *formatValue) String() string { return string(*v) }
func (v *formatValue) Type() string   { return "format" }

func (v *formatValue) Set(s string) error {
	f, err := domain.ParseOutputFormat(s)
	if err != nil {
		return err
	}
	*v = formatValue(f)
	return nil
}

// clockValue is a pflag.Value for HH:MM times.
type clockValue domain.Clock

var _ pflag.Value = (*clockValue)(nil)

func (v *clockValue) String() string { return domain.Clock(*v).String() }
func (v *clockValue) Type() string   { return "HH:MM" }

func (v *clockValue) Set(s string) error {
	c, err := domain.ParseClock(s)
	if err != nil {
		return err
	}
	*v = clockValue(c)
	return nil
}

func modeNames() string {
	names := make([]string, len(domain.ScheduleModes))
	for i, m := range domain.ScheduleModes {
		names[i] = string(m)
	}
	return strings.Join(names, ", ")
}

func formatNames() string {
	names := make([]string, len(domain.OutputFormats))
	for i, f := range domain.OutputFormats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}
