package main

import "testing"

func TestLintCleanConfig(t *testing.T) {
	path := writeConfigFile(t, `
tox:
  env_list: "py311"
testenv:py311:
  set_env: "A=1"
`)
	setGlobalFlags(t, path, "", "")
	lintFlags.format = "text"

	if err := lintConfig(lintCmd, nil); err != nil {
		t.Errorf("lintConfig() on a clean config returned error: %v", err)
	}
}

func TestLintUnusedKeys(t *testing.T) {
	path := writeConfigFile(t, `
tox:
  env_list: "py311"
  bogus_option: true
testenv:py311:
  set_env: "A=1"
  another_typo: 1
`)
	setGlobalFlags(t, path, "", "")
	lintFlags.format = "text"

	if err := lintConfig(lintCmd, nil); err == nil {
		t.Error("lintConfig() with unused keys should return an error")
	}
}

func TestLintInheritedKeysNotDoubleReported(t *testing.T) {
	// base_only lives in the shared section; each environment inherits it
	// but the audit must not attribute it to the environments.
	path := writeConfigFile(t, `
tox:
  env_list: "py311, py312"
testenv:
  set_env: "SHARED=1"
testenv:py311: {}
testenv:py312: {}
`)
	setGlobalFlags(t, path, "", "")
	lintFlags.format = "text"

	if err := lintConfig(lintCmd, nil); err != nil {
		t.Errorf("lintConfig() returned error: %v", err)
	}
}

func TestLintJSONFormat(t *testing.T) {
	path := writeConfigFile(t, `
tox:
  bogus: 1
`)
	setGlobalFlags(t, path, "", "")
	lintFlags.format = "json"
	t.Cleanup(func() { lintFlags.format = "text" })

	if err := lintConfig(lintCmd, nil); err == nil {
		t.Error("lintConfig() with unused keys should return an error")
	}
}
