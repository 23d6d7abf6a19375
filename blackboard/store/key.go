package store

import "unicode/utf8"

// ValidateKey reports whether key can be used with the blackboard.
//
// Any valid UTF-8 string is a legal key, including the empty string.
// Keys are never truncated or repaired.
func ValidateKey(key string) error {
	if !utf8.ValidString(key) {
		return &KeyError{Key: key, Reason: "not valid UTF-8"}
	}

	return nil
}

// mustValidKey panics with a *KeyError when key is not legal.
func mustValidKey(key string) {
	// Fast path for ASCII keys, which is every key used in practice.
	for i := 0; i < len(key); i++ {
		if key[i] >= utf8.RuneSelf {
			if err := ValidateKey(key); err != nil {
				panic(err)
			}

			return
		}
	}
}
