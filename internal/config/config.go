// Package config is the persisted settings store: a JSON file of named
// sections, loaded at most once per process and rewritten whole on normal
// exit. Keys are registered with defaults; unknown on-disk keys are
// retained as opaque values and written back unchanged.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// ErrInvalidValue marks a value rejected by a semantic validator. Setters
// revert to the previous value and return an error wrapping this; nothing
// crashes on bad input.
var ErrInvalidValue = errors.New("invalid value")

// DefaultPath returns the settings file location under the user config
// dir.
func DefaultPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join("quill", "settings.json"))
	if err != nil {
		return "", fmt.Errorf("locate settings file: %w", err)
	}
	return path, nil
}

// Store holds every section. Section and key names are lowercase; the
// JSON layer lowercases them anyway.
type Store struct {
	path     string
	loaded   bool
	data     map[string]any // raw file content plus explicit sets
	sections map[string]*Section
	names    []string
}

func NewStore(path string) *Store {
	return &Store{
		path:     path,
		data:     map[string]any{},
		sections: map[string]*Section{},
	}
}

// Load reads the settings file. It runs at most once per process;
// repeated calls are no-ops. A missing file just means defaults
// everywhere.
func (s *Store) Load() error {
	if s.loaded {
		return nil
	}
	s.loaded = true

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.Is(err, fs.ErrNotExist) || errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read settings: %w", err)
	}
	for key, value := range v.AllSettings() {
		s.data[key] = value
	}
	return nil
}

// Save rewrites the whole settings file. With nothing loaded and nothing
// set there is nothing worth writing.
func (s *Store) Save() error {
	if len(s.data) == 0 {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("json")
	if err := v.MergeConfigMap(s.data); err != nil {
		return fmt.Errorf("stage settings: %w", err)
	}
	if err := v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Section returns the named section, creating it on first use.
func (s *Store) Section(name string) *Section {
	if sec, ok := s.sections[name]; ok {
		return sec
	}
	sec := &Section{name: name, store: s, opts: map[string]*option{}}
	s.sections[name] = sec
	s.names = append(s.names, name)
	return sec
}

// SectionNames lists sections in creation order.
func (s *Store) SectionNames() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

type option struct {
	def       any
	callbacks []func(any) error
}

// Section is one named group of options.
type Section struct {
	name  string
	store *Store
	keys  []string
	opts  map[string]*option
}

func (s *Section) Name() string { return s.name }

// Keys lists registered options in registration order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// AddOption registers key with its default value. The default itself is
// not validated and is never written to disk unless set.
func (s *Section) AddOption(key string, def any) {
	if _, ok := s.opts[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.opts[key] = &option{def: def}
}

func (s *Section) mustOption(key string) *option {
	opt, ok := s.opts[key]
	if !ok {
		panic(fmt.Sprintf("config: option %s.%s was never added", s.name, key))
	}
	return opt
}

func (s *Section) values() map[string]any {
	raw, ok := s.store.data[s.name]
	if !ok {
		return nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	return m
}

// Get returns the stored value, or the registered default when the key
// has never been set.
func (s *Section) Get(key string) any {
	opt := s.mustOption(key)
	if m := s.values(); m != nil {
		if v, ok := m[key]; ok {
			return v
		}
	}
	return opt.def
}

// Set stores value and, when it differs from the previous one, runs the
// connected callbacks. A callback rejecting the value with
// ErrInvalidValue reverts the store to the previous value and the error
// is returned; other callback errors are swallowed so one broken
// consumer cannot wedge the settings.
func (s *Section) Set(key string, value any) error {
	opt := s.mustOption(key)
	old := s.Get(key)

	m := s.values()
	if m == nil {
		m = map[string]any{}
		s.store.data[s.name] = m
	}
	prev, hadPrev := m[key]
	m[key] = value

	if reflect.DeepEqual(value, old) {
		return nil
	}
	for _, cb := range opt.callbacks {
		err := cb(value)
		if err == nil {
			continue
		}
		if errors.Is(err, ErrInvalidValue) {
			if hadPrev {
				m[key] = prev
			} else {
				delete(m, key)
			}
			return err
		}
	}
	return nil
}

// Reset puts key back to its default.
func (s *Section) Reset(key string) error {
	return s.Set(key, s.mustOption(key).def)
}

// Connect schedules cb to run on every accepted change of key. With
// runNow the callback also runs immediately on the current value; if it
// rejects that value the key is reset to its default.
func (s *Section) Connect(key string, cb func(any) error, runNow bool) {
	opt := s.mustOption(key)
	if runNow {
		if err := cb(s.Get(key)); err != nil && errors.Is(err, ErrInvalidValue) {
			_ = s.Reset(key)
		}
	}
	opt.callbacks = append(opt.callbacks, cb)
}

// String returns the value of key as a string.
func (s *Section) String(key string) string {
	switch v := s.Get(key).(type) {
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Int returns the value of key as an int; JSON numbers arrive as
// float64.
func (s *Section) Int(key string) int {
	switch v := s.Get(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// Bool casts the stored value, false for anything else.
func (s *Section) Bool(key string) bool {
	v, _ := s.Get(key).(bool)
	return v
}

// OneOf builds a validator accepting only the given choices.
func OneOf(choices ...string) func(any) error {
	return func(v any) error {
		val := fmt.Sprintf("%v", v)
		for _, c := range choices {
			if c == val {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of %v: %w", val, choices, ErrInvalidValue)
	}
}

// IntRange builds a validator accepting integers in [min, max].
func IntRange(min, max int) func(any) error {
	return func(v any) error {
		var n int
		switch value := v.(type) {
		case int:
			n = value
		case int64:
			n = int(value)
		case float64:
			n = int(value)
		default:
			return fmt.Errorf("%v is not an integer: %w", v, ErrInvalidValue)
		}
		if n < min {
			return fmt.Errorf("%d is too small (minimum %d): %w", n, min, ErrInvalidValue)
		}
		if n > max {
			return fmt.Errorf("%d is too big (maximum %d): %w", n, max, ErrInvalidValue)
		}
		return nil
	}
}
