package mapper

import (
	"fmt"

	"github.com/go-logr/logr"
	"github.com/hashicorp/go-multierror"
)

type (
	// Source supplies the Definition applied by a Mapper.
	Source interface {
		Definition() *Definition
	}

	// Mapper copies data fields onto objects as declared
	// by the Definition of its Source.
	// A Mapper holds no per-call state and can be shared.
	Mapper struct {
		source  Source
		logger  logr.Logger
		options Options
		ignore  map[string]struct{}
	}
)


// Map applies every Association whose field is present in
// data to object.  Presence is determined by the key alone
// so zero and nil values are applied too.  Fields without an
// Association are ignored.
func (m *Mapper) Map(
	data   map[string]any,
	object any,
) error {
	def := m.source.Definition()
	if !def.defined() {
		panic("definition cannot be nil or undefined")
	}
	target, err := def.check(object)
	if err != nil {
		return err
	}

	logger := m.logger.WithValues("type", def.Type())

	var (
		invalid error
		matched int
		applied int
	)
	for _, e := range def.current().entries {
		value, ok := data[e.Field]
		if !ok {
			continue
		}
		matched++
		if _, skip := m.ignore[e.Field]; skip {
			continue
		}
		if err := e.member.apply(target, value); err != nil {
			failed := &ApplyError{Association: e.Association, Reason: err}
			logger.Error(failed, "mapping failed", "field", e.Field)
			if m.options.FailFast == OptionTrue {
				return failed
			}
			invalid = multierror.Append(invalid, failed)
			continue
		}
		applied++
	}

	logger.V(m.options.Verbosity).Info("mapped",
		"object",  fmt.Sprintf("%T", object),
		"applied", applied,
		"skipped", matched-applied,
		"ignored", len(data)-matched)
	return invalid
}

// Definition returns the Definition currently supplied by the Source.
func (m *Mapper) Definition() *Definition {
	return m.source.Definition()
}

// Options returns the effective options.
func (m *Mapper) Options() Options {
	return m.options
}


// WithLogger assigns the logger used to report mapping activity.
func WithLogger(logger logr.Logger) func(*Mapper) {
	return func(m *Mapper) {
		m.logger = logger.WithName("mapper")
	}
}

// WithOptions merges options into the Mapper options.
// Values set earlier take precedence, Ignore lists accumulate.
// Zero values are unset, so use OptionFalse to pin FailFast off.
func WithOptions(options Options) func(*Mapper) {
	return func(m *Mapper) {
		if err := MergeOptions(&options, &m.options); err != nil {
			panic(fmt.Errorf("options: %w", err))
		}
	}
}

// New creates a Mapper applying the Definition of source.
func New(
	source Source,
	config ...func(*Mapper),
) *Mapper {
	if IsNil(source) {
		panic("source cannot be nil")
	}
	m := &Mapper{source: source, logger: logr.Discard()}
	for _, configure := range config {
		if configure != nil {
			configure(m)
		}
	}
	if len(m.options.Ignore) > 0 {
		m.ignore = make(map[string]struct{}, len(m.options.Ignore))
		for _, field := range m.options.Ignore {
			m.ignore[field] = struct{}{}
		}
	}
	return m
}
