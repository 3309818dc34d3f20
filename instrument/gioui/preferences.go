package gioui

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"

	"gioui.org/unit"
)

type (
	Preferences struct {
		Window WindowPreferences
		// YmlError is the error reading the user's preferences.yml, if any;
		// the defaults are used in that case.
		YmlError error `yaml:"-"`
	}

	WindowPreferences struct {
		Width     int
		Height    int
		Maximized bool `yaml:",omitempty"`
	}
)

//go:embed preferences.yml
var defaultPreferencesYaml []byte

func loadDefaultPreferences() Preferences {
	var preferences Preferences
	err := yaml.UnmarshalStrict(defaultPreferencesYaml, &preferences)
	if err != nil {
		panic(fmt.Errorf("failed to unmarshal preferences: %w", err))
	}
	return preferences
}

// ReadCustomConfigYml modifies the target argument, i.e. needs a pointer
func ReadCustomConfigYml(filename string, target interface{}) (exists bool, err error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return false, err
	}
	return readConfigYml(filepath.Join(configDir, "strum", filename), target)
}

func readConfigYml(path string, target interface{}) (exists bool, err error) {
	bytes, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return true, err
	}
	return true, yaml.UnmarshalStrict(bytes, target)
}

// MakePreferences returns the embedded defaults overridden by
// preferences.yml in the user config directory.
func MakePreferences() Preferences {
	preferences := loadDefaultPreferences()
	custom := preferences
	exists, err := ReadCustomConfigYml("preferences.yml", &custom)
	if !exists {
		return preferences
	}
	if err != nil {
		preferences.YmlError = err
		return preferences
	}
	return custom
}

func (p Preferences) WindowSize() (unit.Dp, unit.Dp) {
	return unit.Dp(p.Window.Width), unit.Dp(p.Window.Height)
}
