package lib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

/*
	One library or description file. The content is read once, on first
	use, and kept as the snapshot that existence checks run against. New
	records only live in memory until Flush, so the snapshot never sees
	entries added during the same run.
*/
type LibraryFile struct {
	Path string
	Kind FileKind

	snapshot string
	loaded   bool
	records  []Record
	events   Events
}

func NewLibraryFile(path string, kind FileKind, events Events) *LibraryFile {
	if events == nil {
		events = DiscardEvents
	}

	return &LibraryFile{Path: path, Kind: kind, events: events}
}

func (f *LibraryFile) Load() error {
	if f.loaded {
		return nil
	}

	content, err := os.ReadFile(f.Path)
	switch {
	case os.IsNotExist(err):
		f.snapshot = f.Kind.Empty()
		f.events.Emit(Event{Kind: EventLibraryCreated, Path: f.Path})
	case err != nil:
		return fmt.Errorf("failed to read %s: %w", f.Path, err)
	default:
		f.snapshot = string(content)
		if version, ok := f.Kind.HeaderVersion(f.snapshot); ok && !f.Kind.Supports(version) {
			f.events.Emit(Event{
				Kind:   EventLibraryVersion,
				Path:   f.Path,
				Detail: fmt.Sprintf("version %s, supported %s", version, f.Kind.SupportedVersion()),
			})
		}
	}

	f.loaded = true
	return nil
}

func (f *LibraryFile) Snapshot() string {
	return f.snapshot
}

/*
	Plain substring check against the snapshot. A name that happens to be
	part of an unrelated entry counts as present.
*/
func (f *LibraryFile) Contains(s string) bool {
	return strings.Contains(f.snapshot, s)
}

func (f *LibraryFile) Append(record Record) {
	f.records = append(f.records, record)
}

// Pending returns the number of records waiting for Flush.
func (f *LibraryFile) Pending() int {
	return len(f.records)
}

/*
	Write the snapshot with the pending records spliced in. Nothing is
	written when there is nothing pending.
*/
func (f *LibraryFile) Flush() (bool, error) {
	pending := f.Pending()
	if err := FlushFiles(f); err != nil {
		return false, err
	}

	return pending > 0, nil
}

/*
	A file's new content, written next to it and not yet renamed into
	place.
*/
type stagedFile struct {
	file    *LibraryFile
	tmp     string
	content string
}

func (f *LibraryFile) stage() (*stagedFile, error) {
	if info, err := os.Stat(f.Path); err == nil && !info.Mode().IsRegular() {
		return nil, fmt.Errorf("failed to write %s: not a regular file", f.Path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), "."+filepath.Base(f.Path)+".*")
	if err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}

	content := Splice(f.snapshot, f.Kind.Sentinel(), f.records)
	staged := &stagedFile{file: f, tmp: tmp.Name(), content: content}

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		staged.discard()
		return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		staged.discard()
		return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	if err := tmp.Close(); err != nil {
		staged.discard()
		return nil, fmt.Errorf("failed to write %s: %w", f.Path, err)
	}

	return staged, nil
}

func (s *stagedFile) commit() error {
	if err := os.Rename(s.tmp, s.file.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.file.Path, err)
	}

	s.file.events.Emit(Event{
		Kind:   EventLibraryWritten,
		Path:   s.file.Path,
		Detail: fmt.Sprintf("%d entries added", len(s.file.records)),
	})
	s.file.snapshot = s.content
	s.file.records = nil

	return nil
}

func (s *stagedFile) discard() {
	_ = os.Remove(s.tmp)
}

/*
	Write every file with pending records as one batch. All new contents
	are written to temporary files first; the originals are only replaced
	once every one of them has been written, so a failure leaves all files
	as they were.
*/
func FlushFiles(files ...*LibraryFile) error {
	staged := []*stagedFile{}
	discard := func() {
		for _, s := range staged {
			s.discard()
		}
	}

	for _, f := range files {
		if f.Pending() == 0 {
			continue
		}

		s, err := f.stage()
		if err != nil {
			discard()
			return err
		}
		staged = append(staged, s)
	}

	for i, s := range staged {
		if err := s.commit(); err != nil {
			staged = staged[i:]
			discard()
			return err
		}
	}

	return nil
}

/*
	Splice records in front of the sentinel: the old sentinel is cut off
	the content and a fresh one is appended after the records.
*/
func Splice(content, sentinel string, records []Record) string {
	b := strings.Builder{}
	b.WriteString(trimSentinel(content, sentinel))
	b.WriteString("\n")

	for _, record := range records {
		for _, line := range record {
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	b.WriteString(sentinel)
	b.WriteString("\n")

	return b.String()
}

func trimSentinel(content, sentinel string) string {
	s := strings.TrimRight(content, " \r\n")

	lines := strings.Split(sentinel, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		cut := strings.LastIndex(s, "\n") + 1
		if strings.TrimSpace(s[cut:]) != lines[i] {
			break
		}

		s = strings.TrimRight(s[:cut], "\r\n")
	}

	return s
}

/*
	The library and description file of one component family.
*/
type FamilyLibrary struct {
	Family  Family
	Symbols *LibraryFile
	Docs    *LibraryFile
}

func NewFamilyLibrary(family Family, library, docs string, events Events) *FamilyLibrary {
	return &FamilyLibrary{
		Family:  family,
		Symbols: NewLibraryFile(library, KindLibrary, events),
		Docs:    NewLibraryFile(docs, KindDocs, events),
	}
}

func (l *FamilyLibrary) Load() error {
	if err := l.Symbols.Load(); err != nil {
		return err
	}

	return l.Docs.Load()
}

func (l *FamilyLibrary) Add(symbol, description Record) {
	l.Symbols.Append(symbol)
	l.Docs.Append(description)
}

// Files returns the library file and the description file.
func (l *FamilyLibrary) Files() []*LibraryFile {
	return []*LibraryFile{l.Symbols, l.Docs}
}

// Flush writes the library and description files together.
func (l *FamilyLibrary) Flush() error {
	return FlushFiles(l.Files()...)
}
