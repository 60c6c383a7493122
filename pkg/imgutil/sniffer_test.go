package imgutil

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"
)

func TestDetectHeader(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want Kind
	}{
		{"jpeg", pad([]byte{0xff, 0xd8, 0xff, 0xe0}), KindJPEG},
		{"png", pad(pngSig), KindPNG},
		{"webp", webpHeader(nil), KindWebP},
		{"avif", ftypHeader("avif"), KindAVIF},
		{"svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg">`), KindSVG},
		{"svg xml decl", []byte(`<?xml version="1.0"?><svg></svg>`), KindSVG},
		{"garbage", pad([]byte{0x00, 0x01, 0x02, 0x03}), KindUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DetectHeader(tc.data[:headerLen])
			if err != nil {
				t.Fatalf("detect: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %s, want %s", got, tc.want)
			}
		})
	}
}

func TestDetectHeaderTooShort(t *testing.T) {
	if _, err := DetectHeader([]byte{0xff, 0xd8}); err == nil {
		t.Fatal("expected error for short header")
	}
}

func TestAnimatedPNG(t *testing.T) {
	still := buildPNG(false)
	if Animated(still, KindPNG) {
		t.Fatal("still PNG reported animated")
	}

	apng := buildPNG(true)
	if !Animated(apng, KindPNG) {
		t.Fatal("APNG with acTL not reported animated")
	}
}

func TestAnimatedWebP(t *testing.T) {
	still := webpHeader([]byte("VP8 "))
	if Animated(still, KindWebP) {
		t.Fatal("still WebP reported animated")
	}

	anim := webpHeader([]byte("ANIM"))
	if !Animated(anim, KindWebP) {
		t.Fatal("WebP with ANIM chunk not reported animated")
	}
}

func TestAnimatedAVIF(t *testing.T) {
	still := ftypHeader("avif")
	if Animated(still, KindAVIF) {
		t.Fatal("still AVIF reported animated")
	}

	seq := ftypHeader("avis")
	if !Animated(seq, KindAVIF) {
		t.Fatal("avis sequence not reported animated")
	}
}

func pad(prefix []byte) []byte {
	out := make([]byte, headerLen+8)
	copy(out, prefix)
	return out
}

// webpHeader builds a RIFF/WEBP container holding one chunk of the
// given fourcc (nil for a header-only file).
func webpHeader(fourCC []byte) []byte {
	var body bytes.Buffer
	body.Write([]byte("WEBP"))
	if fourCC != nil {
		body.Write(fourCC)
		_ = binary.Write(&body, binary.LittleEndian, uint32(4))
		body.Write([]byte{0, 0, 0, 0})
	}

	var buf bytes.Buffer
	buf.Write([]byte("RIFF"))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(body.Len()))
	buf.Write(body.Bytes())
	for buf.Len() < headerLen {
		buf.WriteByte(0)
	}
	return buf.Bytes()
}

func ftypHeader(brand string) []byte {
	var buf bytes.Buffer
	_ = binary.Write(&buf, binary.BigEndian, uint32(20))
	buf.Write([]byte("ftyp"))
	buf.Write([]byte(brand))
	_ = binary.Write(&buf, binary.BigEndian, uint32(0))
	buf.Write([]byte("mif1"))
	return buf.Bytes()
}

// buildPNG assembles a signature-valid PNG chunk list, optionally with
// the APNG animation-control chunk before IDAT.
func buildPNG(animated bool) []byte {
	var buf bytes.Buffer
	buf.Write(pngSig)

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], 1)
	binary.BigEndian.PutUint32(ihdr[4:8], 1)
	ihdr[8] = 8
	ihdr[9] = 6
	buf.Write(buildChunk("IHDR", ihdr))

	if animated {
		actl := make([]byte, 8)
		binary.BigEndian.PutUint32(actl[0:4], 2)
		buf.Write(buildChunk("acTL", actl))
	}

	buf.Write(buildChunk("IDAT", []byte{0}))
	buf.Write(buildChunk("IEND", nil))
	return buf.Bytes()
}

func buildChunk(chunkType string, data []byte) []byte {
	chunkTypeBytes := []byte(chunkType)
	lenBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(lenBuf, uint32(len(data)))
	crc := crc32.ChecksumIEEE(append(chunkTypeBytes, data...))
	crcBuf := make([]byte, 4)
	binary.BigEndian.PutUint32(crcBuf, crc)

	chunk := make([]byte, 0, 12+len(data))
	chunk = append(chunk, lenBuf...)
	chunk = append(chunk, chunkTypeBytes...)
	chunk = append(chunk, data...)
	chunk = append(chunk, crcBuf...)
	return chunk
}
