package imgopt

import (
	"bytes"
	"image"

	"github.com/disintegration/imaging"
	exif "github.com/dsoprea/go-exif/v3"
)

// applyOrientation rotates a decoded JPEG according to its EXIF
// orientation tag. Missing or unreadable EXIF leaves the image as-is.
func applyOrientation(img image.Image, raw []byte) image.Image {
	tags, _, err := exif.GetFlatExifDataUniversalSearchWithReadSeeker(bytes.NewReader(raw), nil, true)
	if err != nil {
		return img
	}

	orientation := 0
	for _, tag := range tags {
		if tag.TagName != "Orientation" {
			continue
		}
		if v, ok := tag.Value.([]uint16); ok && len(v) > 0 {
			orientation = int(v[0])
		}
		break
	}

	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}
