package config

// Specification of the on-disk library index format.
// ENUM(jsonl, flat)
type IndexFmt int

// Specification of the rasterized page image format.
// ENUM(png, jpeg)
type PageFmt int

func (p PageFmt) Ext() string {
	switch p {
	case PageFmtPng:
		return ".png"
	case PageFmtJpeg:
		return ".jpg"
	default:
		// this should never happen
		panic("unsupported page format requested")
	}
}
