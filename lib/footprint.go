package lib

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mholt/archiver"
	gocache "github.com/patrickmn/go-cache"
)

type FootprintCatalog interface {
	/*
		Reports whether any footprint file in dir contains name.
	*/
	Has(dir, name string) (bool, error)
}

// Archive formats a footprint directory may be shipped as.
var catalogArchives = []string{".zip", ".tar.gz", ".tgz", ".tar"}

/*
	Footprint catalog backed by KiCad .pretty directories under root. A
	directory may also be an archive next to where the directory would be
	(SFUSat-cap.pretty.zip). Listings are read once and cached.
*/
type DirCatalog struct {
	root   string
	cache  *gocache.Cache
	events Events
}

func NewDirCatalog(root string, events Events) *DirCatalog {
	if events == nil {
		events = DiscardEvents
	}

	return &DirCatalog{
		root:   root,
		cache:  gocache.New(gocache.NoExpiration, 0),
		events: events,
	}
}

func (c *DirCatalog) Has(dir, name string) (bool, error) {
	files, err := c.Files(dir)
	if err != nil {
		return false, err
	}

	for _, file := range files {
		if strings.Contains(file, name) {
			return true, nil
		}
	}

	return false, nil
}

// Files lists the file names in a footprint directory.
func (c *DirCatalog) Files(dir string) ([]string, error) {
	if files, ok := c.cache.Get(dir); ok {
		return files.([]string), nil
	}

	files, err := c.list(dir)
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	c.cache.Set(dir, files, gocache.NoExpiration)

	return files, nil
}

func (c *DirCatalog) list(dir string) ([]string, error) {
	path := filepath.Join(c.root, dir)
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}

		files := []string{}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			files = append(files, entry.Name())
		}

		return files, nil
	}

	for _, ext := range catalogArchives {
		if !Exists(path + ext) {
			continue
		}

		files := []string{}
		err := archiver.Walk(path+ext, func(f archiver.File) error {
			if !f.IsDir() {
				files = append(files, f.Name())
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		return files, nil
	}

	c.events.Emit(Event{Kind: EventMissingCatalog, Path: path})
	return []string{}, nil
}
