// Package frame defines the plain-data types that describe a captured
// video frame as it moves through VCS: its resolution, pixel format, and
// the buffer that holds its pixels.
package frame
