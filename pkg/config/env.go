package config

import "fmt"

// EnvSet is the configuration set for one test environment. It registers the
// set_env overlay and uses the strict duplicate policy.
type EnvSet struct {
	*ConfigSet

	defaultSetEnv func() map[string]string
}

func newEnvSet(conf *Config, section, envName string) (*EnvSet, error) {
	s := &EnvSet{
		ConfigSet: newConfigSet(conf, section, envName, StrictDuplicates),
	}
	if err := s.registerKeys(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *EnvSet) registerKeys() error {
	section, envName := s.section, s.envName

	_, err := s.AddDynamic(
		[]string{"set_env", "setenv"},
		nil,
		"environment variables to set when running commands in the test environment",
		WithDefaultFunc(func(*Config, *LoadArgs) (any, error) {
			return NewSetEnv("", section, envName)
		}),
		WithFactory(func(raw any) (any, error) {
			text, ok := raw.(string)
			if !ok {
				return nil, &InvalidRawValueError{Key: "set_env", Raw: raw}
			}
			se, err := NewSetEnv(text, section, envName)
			if err != nil {
				return nil, &InvalidRawValueError{Key: "set_env", Raw: raw, Cause: err}
			}
			return se, nil
		}),
		WithPostProcess(func(value any) (any, error) {
			se, ok := value.(*SetEnv)
			if !ok {
				return nil, &InvalidRawValueError{Key: "set_env", Raw: value}
			}
			if s.defaultSetEnv != nil {
				se.UpdateIfNotPresent(s.defaultSetEnv())
			}
			return se, nil
		}),
	)
	return err
}

// SetDefaultSetEnvLoader assigns the supplier of default environment
// variables merged into set_env for entries not explicitly declared. It may
// be assigned at most once per set.
func (s *EnvSet) SetDefaultSetEnvLoader(fn func() map[string]string) error {
	if s.defaultSetEnv != nil {
		return fmt.Errorf("default set_env loader already assigned for section %q", s.section)
	}
	s.defaultSetEnv = fn
	return nil
}
