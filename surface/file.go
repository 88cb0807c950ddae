// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package surface

import (
	"bufio"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format is an image encoding format.
type Format int

// Supported formats.
const (
	None Format = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case PNG:
		return "png"
	case JPEG:
		return "jpeg"
	case GIF:
		return "gif"
	case TIFF:
		return "tiff"
	case BMP:
		return "bmp"
	default:
		return "none"
	}
}

// ExtToFormat returns the Format of a file name extension,
// which can start with a . or not.
func ExtToFormat(ext string) (Format, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	switch ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "gif":
		return GIF, nil
	case "tif", "tiff":
		return TIFF, nil
	case "bmp":
		return BMP, nil
	case "":
		return None, fmt.Errorf("surface: no extension")
	}
	return None, fmt.Errorf("surface: extension %q not recognized", ext)
}

// Detect sniffs the format of the encoded image read from r.
func Detect(r io.Reader) (Format, error) {
	head := make([]byte, 261)
	n, err := io.ReadFull(r, head)
	if err != nil && err != io.ErrUnexpectedEOF {
		return None, err
	}
	kind, err := filetype.Match(head[:n])
	if err != nil {
		return None, err
	}
	if kind == filetype.Unknown {
		return None, fmt.Errorf("surface: unknown file type")
	}
	return ExtToFormat(kind.Extension)
}

// Encode writes frame to w using format f.
func Encode(w io.Writer, frame image.Image, f Format) error {
	switch f {
	case PNG:
		return png.Encode(w, frame)
	case JPEG:
		return jpeg.Encode(w, frame, &jpeg.Options{Quality: 90})
	case GIF:
		return gif.Encode(w, frame, nil)
	case TIFF:
		return tiff.Encode(w, frame, &tiff.Options{Compression: tiff.Deflate})
	case BMP:
		return bmp.Encode(w, frame)
	}
	return fmt.Errorf("surface: cannot encode format %v", f)
}

// File is a surface that encodes presented frames into
// a file.
type File struct {
	path   string
	format Format
	img    *image.RGBA
}

// NewFile creates a surface that writes to path.
// If path names an existing image file, its format is
// kept; otherwise the format is chosen from the file
// name extension. The directory of path must exist.
// It fails with ErrSurfaceUnavailable if path cannot
// be used.
func NewFile(path string) (*File, error) {
	dir := filepath.Dir(path)
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		return nil, unavailable(path, "no such directory")
	}
	f := &File{path: path}
	if fi, err := os.Stat(path); err == nil {
		if fi.IsDir() {
			return nil, unavailable(path, "is a directory")
		}
		if ff, err := detectFile(path); err == nil {
			f.format = ff
		}
	}
	if f.format == None {
		ff, err := ExtToFormat(filepath.Ext(path))
		if err != nil {
			return nil, unavailable(path, err.Error())
		}
		f.format = ff
	}
	return f, nil
}

func detectFile(path string) (Format, error) {
	file, err := os.Open(path)
	if err != nil {
		return None, err
	}
	defer file.Close()
	return Detect(file)
}

// Name implements Surface.
func (s *File) Name() string { return s.path }

// Format returns the format s encodes frames with.
func (s *File) Format() Format { return s.format }

// Bind implements Surface.
func (s *File) Bind(width, height int) (draw.Image, error) {
	if err := checkSize(s.path, width, height); err != nil {
		return nil, err
	}
	r := image.Rect(0, 0, width, height)
	if s.img == nil || s.img.Rect != r {
		s.img = image.NewRGBA(r)
	}
	return s.img, nil
}

// Present implements Surface.
func (s *File) Present(frame image.Image) (err error) {
	file, err := os.Create(s.path)
	if err != nil {
		return unavailable(s.path, err.Error())
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	bw := bufio.NewWriter(file)
	if err = Encode(bw, frame, s.format); err != nil {
		return
	}
	return bw.Flush()
}
