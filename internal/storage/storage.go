// Package storage abstracts where uploaded property images live. The disk
// implementation mirrors production object storage closely enough for a
// single-node deployment; the interface keeps an object store pluggable.
package storage

import (
	"io"
	"os"
	"path/filepath"
)

type Storage interface {
	// Save persists the named file and returns the URL stored on the image row.
	Save(name string, r io.Reader) (string, error)
	Remove(url string) error
}

type Disk struct {
	root string
}

func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

func (d *Disk) Save(name string, r io.Reader) (string, error) {
	if err := os.MkdirAll(d.root, 0o755); err != nil {
		return "", err
	}
	f, err := os.Create(filepath.Join(d.root, name))
	if err != nil {
		return "", err
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "images/" + name, nil
}

func (d *Disk) Remove(url string) error {
	return os.Remove(filepath.Join(d.root, filepath.Base(url)))
}
