// Package checksum writes and verifies the checksums.txt file of a built site.
//
// Each line holds a hex SHA-256 digest, two spaces and a slash-separated path
// relative to the site directory, in path order:
//
//	3b5d...e1a0  index.html
//	9f86...0f00  pancakes.html
//
// The format is compatible with sha256sum:
//
//	sha256sum -c checksums.txt
package checksum
