package lib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplice(t *testing.T) {
	content := Splice(KindLibrary.Empty(), KindLibrary.Sentinel(), []Record{
		{"DEF A", "ENDDEF"},
		{"DEF B", "ENDDEF"},
	})

	require.Equal(t, strings.Join([]string{
		"EESchema-LIBRARY Version 2.4",
		"#encoding utf-8",
		"DEF A",
		"ENDDEF",
		"DEF B",
		"ENDDEF",
		"#",
		"#End Library",
		"",
	}, "\n"), content)
}

func TestSpliceRepeated(t *testing.T) {
	sentinel := KindDocs.Sentinel()

	content := KindDocs.Empty()
	content = Splice(content, sentinel, []Record{FormatDescription("first", "A")})
	content = Splice(content, sentinel, []Record{FormatDescription("second", "B")})

	require.Equal(t, 1, strings.Count(content, "#End Doc Library"))
	require.True(t, strings.HasSuffix(content, sentinel+"\n"))
	require.True(t, strings.HasPrefix(content, "EESchema-DOCLIB  Version 2.0\n"))
	require.Less(t, strings.Index(content, "$CMP A"), strings.Index(content, "$CMP B"))
}

func TestSpliceWithoutSentinel(t *testing.T) {
	content := Splice("EESchema-LIBRARY Version 2.4\n\n", KindLibrary.Sentinel(), []Record{{"DEF A", "ENDDEF"}})
	require.Equal(t, "EESchema-LIBRARY Version 2.4\nDEF A\nENDDEF\n#\n#End Library\n", content)
}

func TestLibraryFileCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SFUSat-cap.lib")
	events := EventLog{}

	file := NewLibraryFile(path, KindLibrary, &events)
	require.NoError(t, file.Load())
	require.Equal(t, KindLibrary.Empty(), file.Snapshot())
	require.Equal(t, []EventKind{EventLibraryCreated}, events.Kinds())

	written, err := file.Flush()
	require.NoError(t, err)
	require.False(t, written)
	require.False(t, Exists(path))

	file.Append(Record{"DEF A", "ENDDEF"})
	require.Equal(t, 1, file.Pending())

	written, err = file.Flush()
	require.NoError(t, err)
	require.True(t, written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, Splice(KindLibrary.Empty(), KindLibrary.Sentinel(), []Record{{"DEF A", "ENDDEF"}}), string(content))
	require.Equal(t, []EventKind{EventLibraryCreated, EventLibraryWritten}, events.Kinds())
}

func TestLibraryFileSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SFUSat-res.lib")
	require.NoError(t, os.WriteFile(path, []byte("EESchema-LIBRARY Version 2.4\n# R_10k0_1%_0.1W_0603\n#\n#End Library\n"), 0644))

	file := NewLibraryFile(path, KindLibrary, nil)
	require.NoError(t, file.Load())
	require.True(t, file.Contains("R_10k0_1%_0.1W_0603"))
	require.True(t, file.Contains("10k0"))

	// appended records are not part of the snapshot
	file.Append(Record{"DEF R_1k0_1%_0.1W_0603"})
	require.False(t, file.Contains("R_1k0_1%_0.1W_0603"))

	// loading twice keeps the first snapshot
	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))
	require.NoError(t, file.Load())
	require.True(t, file.Contains("R_10k0_1%_0.1W_0603"))
}

func TestLibraryFileNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SFUSat-ind.lib")
	require.NoError(t, os.WriteFile(path, []byte("EESchema-LIBRARY Version 2.5\n#\n#End Library\n"), 0644))

	events := EventLog{}
	file := NewLibraryFile(path, KindLibrary, &events)
	require.NoError(t, file.Load())
	require.Equal(t, []EventKind{EventLibraryVersion}, events.Kinds())
}

func TestFamilyLibraryFlush(t *testing.T) {
	dir := t.TempDir()
	library := NewFamilyLibrary(
		FamilyResistor,
		filepath.Join(dir, "SFUSat-res.lib"),
		filepath.Join(dir, "SFUSat-res.dcm"),
		nil,
	)
	require.NoError(t, library.Load())

	library.Add(Record{"DEF R", "ENDDEF"}, FormatDescription("RES", "R"))
	require.NoError(t, library.Flush())

	symbols, err := os.ReadFile(filepath.Join(dir, "SFUSat-res.lib"))
	require.NoError(t, err)
	require.Contains(t, string(symbols), "DEF R\nENDDEF\n#\n#End Library\n")

	docs, err := os.ReadFile(filepath.Join(dir, "SFUSat-res.dcm"))
	require.NoError(t, err)
	require.Equal(t, "EESchema-DOCLIB  Version 2.0\n#\n$CMP R\nD RES\n$ENDCMP\n#\n#End Doc Library\n", string(docs))
}

func TestFamilyLibraryFlushUnwritableDocs(t *testing.T) {
	dir := t.TempDir()
	symbolsPath := filepath.Join(dir, "SFUSat-res.lib")
	original := "EESchema-LIBRARY Version 2.4\n#encoding utf-8\n#\n#End Library\n"
	require.NoError(t, os.WriteFile(symbolsPath, []byte(original), 0644))

	library := NewFamilyLibrary(FamilyResistor, symbolsPath, filepath.Join(dir, "missing", "SFUSat-res.dcm"), nil)
	require.NoError(t, library.Load())

	library.Add(Record{"DEF R", "ENDDEF"}, FormatDescription("RES", "R"))
	require.Error(t, library.Flush())

	content, err := os.ReadFile(symbolsPath)
	require.NoError(t, err)
	require.Equal(t, original, string(content))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestLibraryFileFlushTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "SFUSat-cap.lib")
	file := NewLibraryFile(path, KindLibrary, nil)
	require.NoError(t, file.Load())

	file.Append(Record{"DEF A", "ENDDEF"})
	_, err := file.Flush()
	require.NoError(t, err)
	require.Zero(t, file.Pending())

	file.Append(Record{"DEF B", "ENDDEF"})
	_, err = file.Flush()
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "EESchema-LIBRARY Version 2.4\n#encoding utf-8\nDEF A\nENDDEF\nDEF B\nENDDEF\n#\n#End Library\n", string(content))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0644), info.Mode().Perm())
}
