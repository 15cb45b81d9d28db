// Package secrets provides the asymmetric box primitives tether uses to move
// a workspace key between custodians.
//
// # Encryption Architecture
//
// Every workspace has a random symmetric key that encrypts its secrets. The
// backend never sees that key in the clear; instead it stores one copy per
// member, each sealed with NaCl box (Curve25519, XSalsa20-Poly1305) from the
// sender's private key to the member's public key.
//
// Activating a workspace bot is a re-encryption:
//
//  1. Open the member's copy with the member's private key and the sender's public key
//  2. Seal the plaintext from the member's private key to the bot's public key
//
// # Encoding
//
// Keys, nonces and ciphertexts cross the API as standard base64 strings.
// Keys are 32 bytes and nonces are 24 bytes once decoded. A fresh random
// nonce is drawn for every seal, so sealing the same key twice produces
// different output.
package secrets
