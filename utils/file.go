package utils

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Uploader stores an object and returns the URL it can be fetched from.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// LocalStore writes uploads under Dir; the server exposes Dir at URLPrefix.
type LocalStore struct {
	Dir       string
	URLPrefix string
}

func NewLocalStore(dir, urlPrefix string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &LocalStore{Dir: dir, URLPrefix: strings.TrimRight(urlPrefix, "/")}, nil
}

func (l *LocalStore) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	rel, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	destPath := filepath.Join(l.Dir, rel)
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return "", err
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, body); err != nil {
		return "", err
	}
	return l.URLPrefix + filepath.ToSlash(rel), nil
}

// cleanKey roots key so it cannot climb out of the upload dir.
func cleanKey(key string) (string, error) {
	clean := filepath.Clean("/" + key)
	if clean == "/" {
		return "", fmt.Errorf("invalid upload key %q", key)
	}
	return clean, nil
}
