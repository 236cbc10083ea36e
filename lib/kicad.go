package lib

import (
	"bufio"
	"strings"

	vlib "github.com/mcuadros/go-version"
)

/*
	Legacy (KiCad 5) symbol library formats: .lib holds the symbols, .dcm
	holds their descriptions. Both end in a sentinel that new entries are
	spliced in front of.
*/
type FileKind int

const (
	KindLibrary FileKind = iota
	KindDocs
)

type fileFormat struct {
	magic    string
	version  string
	sentinel string
	empty    string
}

var fileFormats = map[FileKind]fileFormat{
	KindLibrary: {
		magic:    "EESchema-LIBRARY",
		version:  "2.4",
		sentinel: "#\n#End Library",
		empty:    "EESchema-LIBRARY Version 2.4\n#encoding utf-8\n#\n#End Library\n",
	},
	KindDocs: {
		magic:    "EESchema-DOCLIB",
		version:  "2.0",
		sentinel: "#\n#End Doc Library",
		empty:    "EESchema-DOCLIB  Version 2.0\n#\n#End Doc Library\n",
	},
}

func (k FileKind) String() string {
	if k == KindDocs {
		return "docs"
	}

	return "library"
}

func (k FileKind) Sentinel() string {
	return fileFormats[k].sentinel
}

// Empty returns the content of a new file with no entries.
func (k FileKind) Empty() string {
	return fileFormats[k].empty
}

func (k FileKind) SupportedVersion() string {
	return fileFormats[k].version
}

/*
	Read the format version from the header line, e.g.
	"EESchema-LIBRARY Version 2.4". ok is false when the content does not
	start with the header of this kind.
*/
func (k FileKind) HeaderVersion(content string) (string, bool) {
	scanner := bufio.NewScanner(strings.NewReader(content))
	if !scanner.Scan() {
		return "", false
	}

	fields := strings.Fields(scanner.Text())
	if len(fields) < 3 || fields[0] != fileFormats[k].magic || fields[1] != "Version" {
		return "", false
	}

	return fields[2], true
}

/*
	Newer formats may carry constructs this tool does not preserve; older
	ones are a subset.
*/
func (k FileKind) Supports(version string) bool {
	return vlib.CompareSimple(version, fileFormats[k].version) <= 0
}
