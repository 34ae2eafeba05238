// Package secrets seals values held in memory by a private-browsing session.
//
// Each session gets its own Sealer. The sealing key is derived with
// HKDF-SHA-256 from a process-wide key, generated once at startup, and a random
// per-session key that is discarded right after derivation. Values are
// encrypted with AES-256 in GCM mode; the random nonce is prepended to the
// ciphertext so every sealed value is self-contained.
//
// When a session ends, Destroy zeroes the derived key so sealed values that are
// still reachable in memory can no longer be opened through the Sealer.
//
// # Usage
//
//	processKey, _ := secrets.GenerateKey()
//
//	s, err := secrets.NewSessionSealer(processKey)
//	if err != nil {
//	    // handle error
//	}
//	defer s.Destroy()
//
//	sealed, _ := s.SealString("cookie-value")
//	plain, _ := s.OpenString(sealed)
//
// # Error Handling
//
// Errors wrap package sentinels such as ErrSealFailed or ErrInvalidCiphertext.
// Use errors.Is to match them.
package secrets
