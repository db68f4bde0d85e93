package errors

import "regexp"

// hashPattern matches a sha-256 content hash in hex form, the only shape a
// layout-archive key may take. Anything else in a path parameter is
// rejected before it reaches the store.
var hashPattern = regexp.MustCompile(`^[0-9a-f]{64}$`)

// ValidateHash validates a layout content hash supplied by a client.
func ValidateHash(hash string) error {
	if hash == "" {
		return New(ErrCodeInvalidInput, "hash cannot be empty")
	}
	if !hashPattern.MatchString(hash) {
		return New(ErrCodeInvalidInput, "malformed layout hash")
	}
	return nil
}

// ValidateDirection validates a layout direction string from a flag or
// request body.
func ValidateDirection(dir string) error {
	switch dir {
	case "", "top-to-bottom", "left-to-right":
		return nil
	}
	return New(ErrCodeInvalidDirection, "unknown direction: %q (must be top-to-bottom or left-to-right)", dir)
}

// ValidateFormat validates an output format string.
func ValidateFormat(format string) error {
	switch format {
	case "", "json", "dot", "svg":
		return nil
	}
	return New(ErrCodeInvalidFormat, "unknown format: %q (must be one of: json, dot, svg)", format)
}
