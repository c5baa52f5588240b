package files

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

const (
	dirPermissions  = 0o755
	filePermissions = 0o644
)

// Node is something that exists at a vault path. It is either a *Document or
// a *Folder; an absent path resolves to a nil Node.
type Node interface {
	VaultPath() string
	isNode()
}

// Document is a text file inside the vault.
type Document struct {
	Path string
}

// VaultPath returns the slash-separated path relative to the vault root.
func (d *Document) VaultPath() string { return d.Path }

func (*Document) isNode() {}

// Folder is anything at a vault path that cannot hold text: directories and
// other non-regular entries.
type Folder struct {
	Path string
}

// VaultPath returns the slash-separated path relative to the vault root.
func (f *Folder) VaultPath() string { return f.Path }

func (*Folder) isNode() {}

// Vault centralizes where documents live on disk and how vault paths map to
// the filesystem. Documents are only ever created or appended to.
type Vault struct {
	basePath string
}

// NewVault constructs a Vault rooted at the provided directory. If basePath
// is empty, it falls back to ~/Jurnal.
func NewVault(basePath string) (*Vault, error) {
	basePath, err := ResolveBasePath(basePath)
	if err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(basePath)
	if err != nil {
		return nil, err
	}

	return &Vault{basePath: abs}, nil
}

// BasePath returns the root directory of the vault.
func (v *Vault) BasePath() string {
	return v.basePath
}

// Abs maps a vault path to its absolute location on disk.
func (v *Vault) Abs(vaultPath string) (string, error) {
	if v == nil {
		return "", errors.New("files.Vault is nil")
	}
	clean, err := cleanVaultPath(vaultPath)
	if err != nil {
		return "", err
	}
	return filepath.Join(v.basePath, filepath.FromSlash(clean)), nil
}

// Resolve reports what exists at vaultPath. It returns a nil Node and a nil
// error when nothing is there.
func (v *Vault) Resolve(ctx context.Context, vaultPath string) (Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := cleanVaultPath(vaultPath)
	if err != nil {
		return nil, err
	}
	abs, err := v.Abs(clean)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", clean, err)
	}
	if info.Mode().IsRegular() {
		return &Document{Path: clean}, nil
	}
	return &Folder{Path: clean}, nil
}

// Create makes a new document with the given initial content, creating parent
// folders as needed. It fails with ErrExists if the path is taken.
func (v *Vault) Create(ctx context.Context, vaultPath, initial string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean, err := cleanVaultPath(vaultPath)
	if err != nil {
		return nil, err
	}
	abs, err := v.Abs(clean)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), dirPermissions); err != nil {
		return nil, fmt.Errorf("create directories: %w", err)
	}

	file, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePermissions)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("%w: %s", ErrExists, clean)
		}
		return nil, fmt.Errorf("create %s: %w", clean, err)
	}
	if initial != "" {
		if _, err := file.WriteString(initial); err != nil {
			file.Close()
			return nil, fmt.Errorf("write %s: %w", clean, err)
		}
	}
	if err := file.Close(); err != nil {
		return nil, fmt.Errorf("close %s: %w", clean, err)
	}

	return &Document{Path: clean}, nil
}

// Append adds text to the end of an existing document in a single write.
func (v *Vault) Append(ctx context.Context, doc *Document, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if doc == nil {
		return errors.New("append: nil document")
	}
	abs, err := v.Abs(doc.Path)
	if err != nil {
		return err
	}

	file, err := os.OpenFile(abs, os.O_WRONLY|os.O_APPEND, filePermissions)
	if err != nil {
		return fmt.Errorf("open %s: %w", doc.Path, err)
	}

	if _, err := file.WriteString(text); err != nil {
		file.Close()
		return fmt.Errorf("append %s: %w", doc.Path, err)
	}
	return file.Close()
}

// Read returns the full content of a document.
func (v *Vault) Read(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if doc == nil {
		return "", errors.New("read: nil document")
	}
	abs, err := v.Abs(doc.Path)
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", doc.Path, err)
	}
	return string(data), nil
}

// cleanVaultPath normalizes a vault path and rejects anything that would land
// outside the vault root.
func cleanVaultPath(vaultPath string) (string, error) {
	slashed := filepath.ToSlash(vaultPath)
	if path.IsAbs(slashed) || filepath.IsAbs(vaultPath) || filepath.VolumeName(vaultPath) != "" {
		return "", fmt.Errorf("%w: %q", ErrOutsideVault, vaultPath)
	}
	clean := path.Clean(slashed)
	if clean == ".." || strings.HasPrefix(clean, "../") {
		return "", fmt.Errorf("%w: %q", ErrOutsideVault, vaultPath)
	}
	return clean, nil
}
