package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mrclmr/genaudio/internal/synth"
)

// ExecutableDir is the default resource directory.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

func resourceDir(dir string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	return ExecutableDir()
}

// zipMagic starts every numpy .npz archive, which is what voice banks are.
var zipMagic = []byte("PK\x03\x04")

// resource resolves name against dir and checks that it is a readable,
// non-empty regular file. If magic is set the file must start with it.
func resource(dir, name string, magic []byte) (string, error) {
	if name == "" {
		return "", &synth.ResourceLoadError{Path: dir, Err: errors.New("no file name configured")}
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, name)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", &synth.ResourceLoadError{Path: path, Err: err}
	}
	defer func() {
		_ = f.Close()
	}()

	info, err := f.Stat()
	if err != nil {
		return "", &synth.ResourceLoadError{Path: path, Err: err}
	}
	if !info.Mode().IsRegular() {
		return "", &synth.ResourceLoadError{Path: path, Err: errors.New("not a regular file")}
	}
	if info.Size() == 0 {
		return "", &synth.ResourceLoadError{Path: path, Err: errors.New("empty file")}
	}

	if len(magic) > 0 {
		head := make([]byte, len(magic))
		_, err = io.ReadFull(f, head)
		if err != nil || !bytes.Equal(head, magic) {
			return "", &synth.ResourceLoadError{
				Path: path,
				Err:  fmt.Errorf("unexpected file header, want %q", magic),
			}
		}
	}
	return path, nil
}
