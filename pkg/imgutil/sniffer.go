package imgutil

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// Kind identifies a supported image type.
type Kind int

const (
	KindUnknown Kind = iota
	KindJPEG
	KindPNG
	KindWebP
	KindAVIF
	KindSVG
)

func (k Kind) String() string {
	switch k {
	case KindJPEG:
		return "jpg"
	case KindPNG:
		return "png"
	case KindWebP:
		return "webp"
	case KindAVIF:
		return "avif"
	case KindSVG:
		return "svg"
	default:
		return "unknown"
	}
}

const headerLen = 16

var (
	pngSig  = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegSig = []byte{0xff, 0xd8, 0xff}
	riffSig = []byte("RIFF")
	webpSig = []byte("WEBP")
	ftypSig = []byte("ftyp")
)

// DetectHeader inspects the first 16 bytes of a file for known signatures.
func DetectHeader(header []byte) (Kind, error) {
	if len(header) < headerLen {
		return KindUnknown, errors.New("header too short")
	}

	if bytes.HasPrefix(header, jpegSig) {
		return KindJPEG, nil
	}
	if bytes.HasPrefix(header, pngSig) {
		return KindPNG, nil
	}
	if bytes.HasPrefix(header, riffSig) && bytes.Equal(header[8:12], webpSig) {
		return KindWebP, nil
	}
	if bytes.Equal(header[4:8], ftypSig) {
		brand := header[8:12]
		if bytes.Equal(brand, []byte("avif")) || bytes.Equal(brand, []byte("avis")) {
			return KindAVIF, nil
		}
	}
	if looksLikeSVG(header) {
		return KindSVG, nil
	}

	return KindUnknown, nil
}

// Detect determines the type of in-memory image bytes.
func Detect(data []byte) Kind {
	if len(data) < headerLen {
		return KindUnknown
	}
	kind, err := DetectHeader(data[:headerLen])
	if err != nil {
		return KindUnknown
	}
	if kind == KindUnknown && looksLikeSVG(data) {
		return KindSVG
	}
	return kind
}

// SniffFile reads the first 16 bytes of a file to determine its type.
func SniffFile(path string) (Kind, error) {
	f, err := os.Open(path)
	if err != nil {
		return KindUnknown, err
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader reads the first 16 bytes from r and determines its type.
func SniffReader(r io.Reader) (Kind, error) {
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(r, header); err != nil {
		return KindUnknown, err
	}

	return DetectHeader(header)
}

// looksLikeSVG accepts documents starting with an XML declaration or an
// <svg> root, ignoring leading whitespace and a UTF-8 BOM.
func looksLikeSVG(data []byte) bool {
	data = bytes.TrimPrefix(data, []byte{0xef, 0xbb, 0xbf})
	data = bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(data, []byte("<?xml")) || bytes.HasPrefix(data, []byte("<svg"))
}
