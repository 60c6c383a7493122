package imgopt

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/avif"
	"github.com/gen2brain/jpegli"
	"github.com/gen2brain/webp"
)

func (p *Pipeline) encode(img image.Image, t target) ([]byte, error) {
	enc := p.opts.Encode
	var buf bytes.Buffer

	switch t {
	case targetPNG:
		e := png.Encoder{CompressionLevel: png.CompressionLevel(enc.PNGCompression)}
		if err := e.Encode(&buf, img); err != nil {
			return nil, err
		}
	case targetJPEG:
		if err := jpegli.Encode(&buf, img, &jpegli.EncodingOptions{
			Quality: enc.JPEGQuality,
		}); err != nil {
			return nil, err
		}
	case targetPJPEG:
		if err := jpegli.Encode(&buf, img, &jpegli.EncodingOptions{
			Quality:          enc.JPEGQuality,
			ProgressiveLevel: enc.JPEGProgressiveLevel,
		}); err != nil {
			return nil, err
		}
	case targetWebP:
		if err := webp.Encode(&buf, img, webp.Options{
			Quality: enc.WebPQuality,
			Method:  enc.WebPMethod,
		}); err != nil {
			return nil, err
		}
	case targetWebPLossless:
		if err := webp.Encode(&buf, img, webp.Options{
			Lossless: true,
			Method:   enc.WebPMethod,
		}); err != nil {
			return nil, err
		}
	case targetAVIF:
		if err := avif.Encode(&buf, img, avif.Options{
			Quality: enc.AVIFQuality,
			Speed:   enc.AVIFSpeed,
		}); err != nil {
			return nil, err
		}
	case targetAVIFHighEffort:
		if err := avif.Encode(&buf, img, avif.Options{
			Quality: enc.AVIFQuality,
			Speed:   enc.AVIFSpeedHighEffort,
		}); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("no encoder for target %d", t)
	}

	return buf.Bytes(), nil
}
