// Package host plays the part of the host environment around the crop and
// resize core: it turns image files into the RGBA buffers the core accepts.
//
// Decoding compressed formats is deliberately kept here and out of the core.
// Files are decoded with github.com/disintegration/imaging, which applies
// EXIF orientation for JPEG, and converted to non-premultiplied RGBA just as a
// browser canvas would hand them out from getImageData.
//
// RenderPreview goes the other way for diagnostics, encoding a scaled image
// with its crop window outlined back to PNG.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The grids it returns are shared
// between callers and must be treated as read-only.
package host
