package config

import (
	"path/filepath"
)

// CoreSet is the configuration set for toxgo's global settings: the source
// file path, the root directory, the working and temp directories, and the
// default environment list. It uses the FirstWins duplicate policy so
// independent setup paths may redeclare globals without conflict.
type CoreSet struct {
	*ConfigSet

	root    string
	srcPath string
}

func newCoreSet(conf *Config, section, root, srcPath string) (*CoreSet, error) {
	s := &CoreSet{
		ConfigSet: newConfigSet(conf, section, "", FirstWins),
		root:      root,
		srcPath:   srcPath,
	}
	if err := s.registerKeys(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *CoreSet) registerKeys() error {
	if _, err := s.AddConstant(
		[]string{"config_file_path"},
		"path to the configuration file",
		s.srcPath,
	); err != nil {
		return err
	}

	if _, err := s.AddDynamic(
		[]string{"tox_root", "toxinidir"},
		s.root,
		"the root directory (where the configuration file is found)",
	); err != nil {
		return err
	}

	if _, err := s.AddDynamic(
		[]string{"work_dir", "toxworkdir"},
		nil,
		"working directory",
		WithDefaultFunc(workDirDefault),
	); err != nil {
		return err
	}

	if _, err := s.AddDynamic(
		[]string{"temp_dir"},
		nil,
		"temporary directory cleaned at start",
		WithDefaultFunc(tempDirDefault),
	); err != nil {
		return err
	}

	if _, err := s.AddDynamic(
		[]string{"env_list", "envlist"},
		NewEnvList(nil),
		"environments to run by default",
		WithFactory(envListFactory),
	); err != nil {
		return err
	}

	return nil
}

// workDirDefault resolves the working directory as .tox/4 under a base
// directory: an externally supplied override replaces the base, otherwise
// the resolved root is used. The version suffix keeps the tree usable next
// to older layouts of the same base.
func workDirDefault(conf *Config, args *LoadArgs) (any, error) {
	base := conf.WorkDir()
	if base == "" {
		root, err := coreRootDir(conf, args)
		if err != nil {
			return nil, err
		}
		base = root
	}
	return filepath.Join(base, ".tox", "4"), nil
}

// tempDirDefault resolves the temp directory to .temp under the root.
func tempDirDefault(conf *Config, args *LoadArgs) (any, error) {
	root, err := coreRootDir(conf, args)
	if err != nil {
		return nil, err
	}
	return filepath.Join(root, ".temp"), nil
}

// coreRootDir resolves tox_root through the core set, passing the inherited
// chain so a cyclic declaration is caught.
func coreRootDir(conf *Config, args *LoadArgs) (string, error) {
	root, err := conf.Core().LoadWithChain("tox_root", args.Chain)
	if err != nil {
		return "", err
	}
	dir, ok := root.(string)
	if !ok {
		return "", &InvalidRawValueError{Key: "tox_root", Raw: root}
	}
	return dir, nil
}

// envListFactory converts a raw loaded env_list value. Both the textual form
// ("py311, py312") and a YAML sequence of names are accepted.
func envListFactory(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		return ParseEnvList(v), nil
	case []any:
		names := make([]string, 0, len(v))
		for _, item := range v {
			name, ok := item.(string)
			if !ok {
				return nil, &InvalidRawValueError{Key: "env_list", Raw: raw}
			}
			names = append(names, name)
		}
		return NewEnvList(names), nil
	default:
		return nil, &InvalidRawValueError{Key: "env_list", Raw: raw}
	}
}
