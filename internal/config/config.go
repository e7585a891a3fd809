// ABOUTME: Settings loading with main + local config deep merge
// ABOUTME: JSON-based configuration using encoding/json; no external libs

package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Requirement marks a per-theme fragment as required or optional.
type Requirement string

const (
	Required Requirement = "required"
	Optional Requirement = "optional"
)

// ManifestFile is the per-bundle manifest, always required.
const ManifestFile = "theme.yaml"

// Settings holds the merged configuration.
type Settings struct {
	ThemesDir       string                 `json:"themes_dir,omitempty"`
	HookScript      string                 `json:"hook_script,omitempty"`
	HookTimeoutMs   int                    `json:"hook_timeout_ms,omitempty"`
	HookOutputLimit int                    `json:"hook_output_limit,omitempty"`
	ActivateCommand string                 `json:"activate_command,omitempty"`
	Fragments       map[string]Requirement `json:"fragments,omitempty"`
	Env             map[string]string      `json:"env,omitempty"`
}

// Defaults applied when a field is absent from every config file.
const (
	DefaultHookTimeoutMs   = 30_000
	DefaultHookOutputLimit = 256 * 1024
)

// DefaultFragments is the fragment policy used when none is configured:
// an alacritty color file is required, everything else optional.
func DefaultFragments() map[string]Requirement {
	return map[string]Requirement{
		"alacritty.toml": Required,
		"kitty.conf":     Optional,
		"ghostty.conf":   Optional,
	}
}

// Load reads and merges the main and per-machine local settings.
// Local settings override main settings. Missing files are not errors.
func Load() (*Settings, error) {
	main, err := loadFile(ConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	local, err := loadFile(LocalConfigFile())
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("loading local config: %w", err)
	}

	merged := merge(main, local)
	applyDefaults(merged)
	ResolveEnvVars(merged)
	return merged, nil
}

// loadFile reads Settings from a JSON file. Returns zero Settings if the
// file does not exist.
func loadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return &Settings{}, err
	}
	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &s, nil
}

// merge deep-merges local settings onto main settings.
// Non-zero local values override main values; maps merge key-wise.
func merge(main, local *Settings) *Settings {
	if main == nil {
		main = &Settings{}
	}
	if local == nil {
		return main
	}

	result := *main

	if local.ThemesDir != "" {
		result.ThemesDir = local.ThemesDir
	}
	if local.HookScript != "" {
		result.HookScript = local.HookScript
	}
	if local.HookTimeoutMs != 0 {
		result.HookTimeoutMs = local.HookTimeoutMs
	}
	if local.HookOutputLimit != 0 {
		result.HookOutputLimit = local.HookOutputLimit
	}
	if local.ActivateCommand != "" {
		result.ActivateCommand = local.ActivateCommand
	}
	if len(local.Fragments) > 0 {
		if result.Fragments == nil {
			result.Fragments = make(map[string]Requirement)
		} else {
			result.Fragments = copyFragments(result.Fragments)
		}
		for k, v := range local.Fragments {
			result.Fragments[k] = v
		}
	}
	if len(local.Env) > 0 {
		if result.Env == nil {
			result.Env = make(map[string]string)
		} else {
			result.Env = copyEnv(result.Env)
		}
		for k, v := range local.Env {
			result.Env[k] = v
		}
	}

	return &result
}

func applyDefaults(s *Settings) {
	if s.ThemesDir == "" {
		s.ThemesDir = ThemesDir()
	}
	if s.HookTimeoutMs == 0 {
		s.HookTimeoutMs = DefaultHookTimeoutMs
	}
	if s.HookOutputLimit == 0 {
		s.HookOutputLimit = DefaultHookOutputLimit
	}
	if len(s.Fragments) == 0 {
		s.Fragments = DefaultFragments()
	}
}

func copyFragments(m map[string]Requirement) map[string]Requirement {
	out := make(map[string]Requirement, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyEnv(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
