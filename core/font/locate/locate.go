/*
Package locate resolves a font family name to a file on disk: the
"font-config service" collaborator the rest of the engine treats as an
external dependency.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package locate

import (
	"bufio"
	"os/exec"
	"strconv"
	"strings"

	findfont "github.com/flopp/go-findfont"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/tategumi/core"
)

func tracer() tracing.Trace {
	return gtrace.Select("tategumi.font")
}

// Match is a resolved font location: a file on disk plus the face
// index within it (non-zero only for TrueType/OpenType collections).
type Match struct {
	Path      string
	FaceIndex int
}

// Resolve turns a font family name into a file on disk. It prefers an
// installed fontconfig, calling out to the fc-match binary rather than
// linking its C library, and falls back to a system fonts-folder scan
// when fontconfig isn't present.
func Resolve(family string) (Match, error) {
	if family == "" {
		family = "Serif"
	}
	if m, ok := resolveViaFontconfig(family); ok {
		return m, nil
	}
	path, err := findfont.Find(family)
	if err != nil {
		return Match{}, core.WrapError(err, core.EMISSING, "font not found: %s", family)
	}
	tracer().Debugf("resolved %s via system font scan: %s", family, path)
	return Match{Path: path}, nil
}

func resolveViaFontconfig(family string) (Match, bool) {
	out, err := exec.Command("fc-match", "-f", "%{file}:%{index}", family).Output()
	if err != nil {
		tracer().Infof("fc-match unavailable or failed for %q: %v", family, err)
		return Match{}, false
	}
	line := strings.TrimSpace(string(out))
	if line == "" {
		return Match{}, false
	}
	path, idxStr, _ := strings.Cut(line, ":")
	m := Match{Path: path}
	if idx, err := strconv.Atoi(idxStr); err == nil {
		m.FaceIndex = idx
	}
	tracer().Debugf("resolved %s via fontconfig: %s[%d]", family, m.Path, m.FaceIndex)
	return m, true
}

// List returns every family fontconfig knows about. It's for
// diagnostics only; font resolution never needs the full list.
func List() ([]string, error) {
	out, err := exec.Command("fc-list", "--format", "%{family[0]}\n").Output()
	if err != nil {
		return nil, core.WrapError(err, core.EMISSING, "fc-list unavailable")
	}
	var families []string
	scanner := bufio.NewScanner(strings.NewReader(string(out)))
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			families = append(families, line)
		}
	}
	return families, nil
}
