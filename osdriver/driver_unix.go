//go:build unix

package osdriver

import "golang.org/x/sys/unix"

// preadFull issues unix.Pread directly against the file descriptor,
// looping on short reads, since Pread does not guarantee filling buf in
// one call.
func (d *Driver) preadFull(buf []byte, off int64) error {
	fd := int(d.f.Fd())
	for len(buf) > 0 {
		n, err := unix.Pread(fd, buf, off)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		if n == 0 {
			return unix.EIO
		}
		buf = buf[n:]
		off += int64(n)
	}
	return nil
}

// pwriteFull issues unix.Pwrite directly, looping on short writes.
func (d *Driver) pwriteFull(buf []byte, off int64) error {
	fd := int(d.f.Fd())
	for len(buf) > 0 {
		n, err := unix.Pwrite(fd, buf, off)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return err
		}
		buf = buf[n:]
		off += int64(n)
	}
	return nil
}

// fdatasync persists data (and only the metadata needed to read it back)
// without the stronger, slower guarantee of a full fsync.
func (d *Driver) fdatasync() error {
	return unix.Fdatasync(int(d.f.Fd()))
}
