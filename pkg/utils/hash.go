package utils

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"image"
)

// RasterHash fingerprints a rendered page so two exports of the same
// set can be compared pixel-for-pixel. Pixels are fed to the hash in
// row-major order.
func RasterHash(img image.Image) string {
	hasher := sha256.New()
	var px [8]byte
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			binary.BigEndian.PutUint16(px[0:], uint16(r))
			binary.BigEndian.PutUint16(px[2:], uint16(g))
			binary.BigEndian.PutUint16(px[4:], uint16(b))
			binary.BigEndian.PutUint16(px[6:], uint16(a))
			hasher.Write(px[:])
		}
	}
	return hex.EncodeToString(hasher.Sum(nil))
}
