package imgutil

import (
	"bytes"
	"encoding/binary"
)

// Animated reports whether data holds a multi-frame image. Detection is
// signature-level only; no frame is decoded.
func Animated(data []byte, kind Kind) bool {
	switch kind {
	case KindPNG:
		return animatedPNG(data)
	case KindWebP:
		return animatedWebP(data)
	case KindAVIF:
		return animatedAVIF(data)
	default:
		return false
	}
}

// animatedPNG walks the chunk list looking for an acTL chunk, which APNG
// requires before the first IDAT.
func animatedPNG(data []byte) bool {
	if len(data) < 8 {
		return false
	}
	off := 8
	for off+8 <= len(data) {
		length := binary.BigEndian.Uint32(data[off : off+4])
		chunkName := string(data[off+4 : off+8])
		switch chunkName {
		case "acTL":
			return true
		case "IDAT", "IEND":
			return false
		}
		off += 8 + int(length) + 4
	}
	return false
}

// animatedWebP walks the RIFF chunk list for an ANIM or ANMF chunk.
func animatedWebP(data []byte) bool {
	off := 12
	for off+8 <= len(data) {
		fourCC := string(data[off : off+4])
		if fourCC == "ANIM" || fourCC == "ANMF" {
			return true
		}
		size := binary.LittleEndian.Uint32(data[off+4 : off+8])
		// RIFF chunks are padded to an even byte count.
		off += 8 + int(size) + int(size)%2
	}
	return false
}

// animatedAVIF checks the ftyp box for the image-sequence brand.
func animatedAVIF(data []byte) bool {
	if len(data) < 12 || !bytes.Equal(data[4:8], ftypSig) {
		return false
	}
	size := int(binary.BigEndian.Uint32(data[0:4]))
	if size < 16 || size > len(data) {
		size = min(len(data), 64)
	}
	// Major brand plus every compatible brand.
	for off := 8; off+4 <= size; off += 4 {
		if bytes.Equal(data[off:off+4], []byte("avis")) {
			return true
		}
	}
	return false
}
