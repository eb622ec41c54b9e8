// SPDX-License-Identifier: MPL-2.0

package modpack

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Pack builds a module pack from srcDir, which must contain exactly one manifest
// at its root. When outPath is empty the pack is written next to srcDir as
// "<name>.lbm". Symlinks are skipped. Returns the absolute path of the pack.
func Pack(srcDir, outPath string) (packPath string, err error) {
	absSrc, err := filepath.Abs(srcDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve source directory: %w", err)
	}
	info, err := os.Stat(absSrc)
	if err != nil {
		return "", fmt.Errorf("failed to stat source directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", absSrc)
	}

	m, err := readDirManifest(absSrc)
	if err != nil {
		return "", err
	}

	if outPath == "" {
		outPath = filepath.Join(filepath.Dir(absSrc), m.Name+Ext)
	}
	absOut, err := filepath.Abs(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve output path: %w", err)
	}

	out, err := os.Create(absOut)
	if err != nil {
		return "", fmt.Errorf("failed to create module pack: %w", err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
		if err != nil {
			_ = os.Remove(absOut)
		}
	}()

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(absSrc, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == absOut || d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, relErr := filepath.Rel(absSrc, path)
		if relErr != nil {
			return fmt.Errorf("failed to get relative path: %w", relErr)
		}
		if rel == "." {
			return nil
		}
		name := filepath.ToSlash(rel)

		if d.IsDir() {
			_, createErr := zw.Create(name + "/")
			return createErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return addFile(zw, path, name, d)
	})
	if walkErr != nil {
		_ = zw.Close()
		return "", fmt.Errorf("failed to pack module: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize module pack: %w", err)
	}

	return absOut, nil
}

func addFile(zw *zip.Writer, path, name string, d fs.DirEntry) error {
	fi, err := d.Info()
	if err != nil {
		return fmt.Errorf("failed to get file info: %w", err)
	}
	header, err := zip.FileInfoHeader(fi)
	if err != nil {
		return fmt.Errorf("failed to create file header: %w", err)
	}
	header.Name = name
	header.Method = zip.Deflate

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("failed to create archive entry: %w", err)
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

// readDirManifest decodes the single manifest at the root of dir.
func readDirManifest(dir string) (*Manifest, error) {
	var found string
	for _, name := range ManifestNames {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			if found != "" {
				return nil, &InvalidManifestError{Source: dir, Err: fmt.Errorf("multiple manifests (%s, %s)", found, name)}
			}
			found = name
		}
	}
	if found == "" {
		return nil, &InvalidManifestError{Source: dir, Err: fmt.Errorf("no manifest found")}
	}

	path := filepath.Join(dir, found)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	return DecodeManifest(found, path, data)
}
