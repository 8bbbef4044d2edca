package volume

// GenerateRGBGrid builds an RGB test volume whose colour encodes position
// (red along x, green along y, blue along z), darkened on alternating cells
// of a boxes^3 checkerboard so slice motion is easy to follow.
func GenerateRGBGrid(width, height, depth, boxes int) (*Volume, error) {
	v, err := New(width, height, depth, 3)
	if err != nil {
		return nil, err
	}
	if boxes < 1 {
		boxes = 1
	}

	for z := 0; z < depth; z++ {
		bz := z * boxes / depth
		for y := 0; y < height; y++ {
			by := y * boxes / height
			for x := 0; x < width; x++ {
				bx := x * boxes / width
				r := uint8(255 * x / max(width-1, 1))
				g := uint8(255 * y / max(height-1, 1))
				b := uint8(255 * z / max(depth-1, 1))
				if (bx+by+bz)%2 == 1 {
					r, g, b = r/2, g/2, b/2
				}
				v.Set(x, y, z, r, g, b)
			}
		}
	}
	return v, nil
}
