package config

import (
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Case is a single named check read from a cases file.
type Case struct {
	Name   string `toml:"name"`
	Push   []int  `toml:"push"`
	Target []int  `toml:"target"`
	// Want is the expected result, nil when the case doesn't declare one.
	Want *bool `toml:"want"`
}

type casesFile struct {
	Cases []Case `toml:"case"`
}

func ReadCases(location string) (cases []Case, err error) {
	f, err := os.Open(location)
	if err != nil {
		return nil, errors.Wrapf(err, "error loading %q", location)
	}
	defer f.Close()
	cases, err = ParseCases(f)
	return cases, errors.Wrapf(err, "error decoding %q", location)
}

// ParseCases decodes a cases file. Cases are returned in the order they
// appear and every case must have a unique, non-blank name.
func ParseCases(r io.Reader) ([]Case, error) {
	var cf casesFile
	md, err := toml.DecodeReader(r, &cf)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.Errorf("unknown key %q", undecoded[0].String())
	}
	seen := map[string]int{}
	for i, c := range cf.Cases {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			return nil, errors.Errorf("case %d: name can't be blank", i+1)
		}
		if j, found := seen[name]; found {
			return nil, errors.Errorf("case %d: name %q already used by case %d", i+1, name, j+1)
		}
		seen[name] = i
		cf.Cases[i].Name = name
	}
	return cf.Cases, nil
}
