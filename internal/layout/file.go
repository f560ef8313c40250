package layout

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/vancomm/shieldsweeper/internal/board"
)

// file is the on-disk form of a layout. A board is given either as art or
// as explicit coordinates.
type file struct {
	Name     string                `yaml:"name" toml:"name"`
	Size     int                   `yaml:"size" toml:"size"`
	Art      []string              `yaml:"art" toml:"art"`
	Bombs    []board.Coord         `yaml:"bombs" toml:"bombs"`
	Disabled []board.DisabledGroup `yaml:"disabled" toml:"disabled"`
	Rewards  []Reward              `yaml:"rewards" toml:"rewards"`
}

// LoadFile reads a layout from a .yaml, .yml or .toml file and checks that
// it builds into a board.
func LoadFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout %s: %w", path, err)
	}

	var f file
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
		}
	case ".toml":
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Layout{}, fmt.Errorf("parse layout %s: unknown keys %v", path, undecoded)
		}
	default:
		return Layout{}, fmt.Errorf("layout %s: unsupported extension %q", path, ext)
	}

	l, err := f.layout()
	if err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if _, err := board.NewGame(l.Config); err != nil {
		return Layout{}, fmt.Errorf("layout %s: %w", path, err)
	}
	return l, nil
}

func (f file) layout() (Layout, error) {
	l := Layout{Name: f.Name, Rewards: f.Rewards}
	if len(f.Art) == 0 {
		l.Config = board.Config{Size: f.Size, Bombs: f.Bombs, Disabled: f.Disabled}
		return l, nil
	}

	if len(f.Bombs) > 0 || len(f.Disabled) > 0 {
		return Layout{}, fmt.Errorf("art cannot be combined with bombs or disabled")
	}
	cfg, err := ParseArt(f.Art)
	if err != nil {
		return Layout{}, err
	}
	if f.Size != 0 && f.Size != cfg.Size {
		return Layout{}, fmt.Errorf("size %d does not match art of size %d", f.Size, cfg.Size)
	}
	l.Config = cfg
	return l, nil
}
