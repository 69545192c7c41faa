package tarx

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var (
	// ErrCorruptArchive means the master archive exists but cannot be read.
	// It is never silently replaced with a fresh one.
	ErrCorruptArchive = errors.New("tarx: corrupt archive")

	// ErrMemberVanished means the member's source file disappeared between
	// discovery and the merge.
	ErrMemberVanished = errors.New("tarx: member file vanished")
)

// Merge rebuilds the tar archive at archivePath with the file at memberPath
// stored under memberName. Any existing member of the same name is dropped;
// all other members keep their relative order and the new member goes last.
// An absent archive is treated as empty.
//
// The rebuild happens in a temp file next to the archive, which is renamed
// over the canonical path only once fully written. A reader never observes a
// half-written archive.
func Merge(archivePath, memberName, memberPath string) error {
	if memberName == "" {
		return fmt.Errorf("tarx: empty member name")
	}

	member, err := os.Open(memberPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %q", ErrMemberVanished, memberPath)
		}
		return fmt.Errorf("tarx: open member %q: %w", memberPath, err)
	}
	defer member.Close()

	memberInfo, err := member.Stat()
	if err != nil {
		return fmt.Errorf("tarx: stat member %q: %w", memberPath, err)
	}

	existing, err := os.Open(archivePath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%w: open %q: %v", ErrCorruptArchive, archivePath, err)
	}
	if existing != nil {
		defer existing.Close()
	}

	tmp, err := os.CreateTemp(filepath.Dir(archivePath), ".merge-*.tar")
	if err != nil {
		return fmt.Errorf("tarx: create temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		os.Remove(tmpPath)
	}()

	tw := tar.NewWriter(tmp)

	if existing != nil {
		if err := copyMembers(tw, existing, memberName); err != nil {
			return err
		}
	}

	if err := writeMember(tw, memberName, member, memberInfo); err != nil {
		return err
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("tarx: finalize archive: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("tarx: sync archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("tarx: close archive: %w", err)
	}

	if err := os.Rename(tmpPath, archivePath); err != nil {
		return fmt.Errorf("tarx: replace archive: %w", err)
	}
	return nil
}

// copyMembers streams every member except skipName from src into tw,
// preserving order. Read failures mean the existing archive is damaged.
func copyMembers(tw *tar.Writer, src io.Reader, skipName string) error {
	tr := tar.NewReader(src)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}
		if hdr.Name == skipName {
			continue
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("tarx: copy header %q: %w", hdr.Name, err)
		}
		if _, err := io.Copy(tw, tr); err != nil {
			return fmt.Errorf("%w: member %q: %v", ErrCorruptArchive, hdr.Name, err)
		}
	}
}

func writeMember(tw *tar.Writer, name string, src io.Reader, info os.FileInfo) error {
	hdr := &tar.Header{
		Name:    name,
		Mode:    0o644,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Format:  tar.FormatPAX,
	}
	if err := tw.WriteHeader(hdr); err != nil {
		return fmt.Errorf("tarx: write header %q: %w", name, err)
	}
	n, err := io.Copy(tw, src)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrMemberVanished, name, err)
	}
	if n != info.Size() {
		return fmt.Errorf("%w: %q: short read %d of %d bytes", ErrMemberVanished, name, n, info.Size())
	}
	return nil
}

// ListMembers returns the member names of the archive in order. An absent
// archive yields an empty list.
func ListMembers(archivePath string) ([]string, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: open %q: %v", ErrCorruptArchive, archivePath, err)
	}
	defer f.Close()

	var names []string
	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return names, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}
		names = append(names, hdr.Name)
	}
}

// ReadMember returns the content of the named member, or os.ErrNotExist if
// the archive has no such member.
func ReadMember(archivePath, memberName string) ([]byte, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("tarx: member %q: %w", memberName, os.ErrNotExist)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
		}
		if hdr.Name == memberName {
			return io.ReadAll(tr)
		}
	}
}
