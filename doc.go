// Package palquant reduces full-color RGBA images to an indexed palette of at
// most 256 colors.
//
// A Quantizer collects a weighted histogram of the fed pixels, splits it into
// clusters by greedy variance reduction and, in high-quality mode, relaxes the
// cluster centroids with Lloyd iterations. Pixels are then mapped to their
// nearest palette entry, either directly or with ordered dithering:
//
//	q := palquant.New(palquant.DefaultOptions())
//	if err := q.FeedImage(img); err != nil {
//	    return err
//	}
//	if err := q.Quantize(256, false); err != nil {
//	    return err
//	}
//	indexed, err := q.Paletted(img, true)
//
// The package does no file I/O; see the utils package for PNG helpers.
package palquant
