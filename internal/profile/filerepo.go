package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const fileExt = ".json"

// FileRepo keeps one JSON file per player in a directory.
type FileRepo struct {
	dir string
}

// NewFileRepo returns a repo rooted at dir. The directory is created on the
// first save.
func NewFileRepo(dir string) *FileRepo {
	return &FileRepo{dir: dir}
}

// Dir returns the directory holding the profiles.
func (r *FileRepo) Dir() string { return r.dir }

func (r *FileRepo) path(name string) string {
	return filepath.Join(r.dir, Key(name)+fileExt)
}

func (r *FileRepo) Load(_ context.Context, name string) (*Profile, error) {
	data, err := os.ReadFile(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return New(name), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read profile %q: %w", Key(name), err)
	}
	p, err := Decode(data, name)
	if err != nil {
		return nil, fmt.Errorf("load profile %q: %w", Key(name), err)
	}
	return p, nil
}

// Save writes the profile to a temporary file and renames it into place.
func (r *FileRepo) Save(_ context.Context, p *Profile) error {
	data, err := Encode(p)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create profile directory: %w", err)
	}
	tmp, err := os.CreateTemp(r.dir, "."+p.Key()+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write profile %q: %w", p.Key(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close profile %q: %w", p.Key(), err)
	}
	if err := os.Rename(tmp.Name(), r.path(p.Name)); err != nil {
		return fmt.Errorf("replace profile %q: %w", p.Key(), err)
	}
	return nil
}

// List skips files that cannot be read or parsed.
func (r *FileRepo) List(_ context.Context) ([]*Profile, error) {
	entries, err := os.ReadDir(r.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	var out []*Profile
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, fileExt) || strings.HasPrefix(name, ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(r.dir, name))
		if err != nil {
			continue
		}
		p, err := Decode(data, strings.TrimSuffix(name, fileExt))
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	SortByScore(out)
	return out, nil
}

func (r *FileRepo) Delete(_ context.Context, name string) error {
	err := os.Remove(r.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %q: %w", Key(name), ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("delete %q: %w", Key(name), err)
	}
	return nil
}

// SortByScore orders profiles by total score, highest first, then by name.
func SortByScore(ps []*Profile) {
	sort.SliceStable(ps, func(i, j int) bool {
		si, sj := ps[i].TotalScore(), ps[j].TotalScore()
		if si != sj {
			return si > sj
		}
		return ps[i].Name < ps[j].Name
	})
}
