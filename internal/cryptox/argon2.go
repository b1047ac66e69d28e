// Package cryptox implements the password hashing service: Argon2id hashes
// encoded in the PHC string format
//
//	$argon2id$v=19$m=<KiB>,t=<passes>,p=<threads>$<salt>$<key>
//
// with unpadded standard base64 for salt and key. The format matches the
// one produced by the reference argon2 libraries, so hashes written by other
// tools verify here and vice versa.
package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrHashMismatch means the hash is well formed but the secret is wrong.
	ErrHashMismatch = errors.New("hash mismatch")
	// ErrMalformedHash means the stored string is not an argon2id PHC hash.
	ErrMalformedHash = errors.New("malformed hash")
)

const variant = "argon2id"

// Upper bounds accepted when decoding, so a damaged row cannot request an
// absurd amount of memory or work.
const (
	maxMemoryKiB = 4 * 1024 * 1024
	maxTime      = 64
)

// Params are the Argon2id cost parameters used for new hashes.
type Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	SaltLen   uint32
	KeyLen    uint32
}

// DefaultParams returns t=3, m=64 MiB, p=4 with a 16 byte salt and a 32 byte key.
func DefaultParams() Params {
	return Params{Time: 3, MemoryKiB: 64 * 1024, Threads: 4, SaltLen: 16, KeyLen: 32}
}

// Hasher turns secrets into verifiable hashes.
type Hasher interface {
	Hash(plaintext string) (string, error)
	// Verify returns nil on match, ErrHashMismatch or ErrMalformedHash.
	Verify(encoded, plaintext string) error
	NeedsRehash(encoded string) bool
}

// Argon2Hasher is the Argon2id Hasher. It is safe for concurrent use.
type Argon2Hasher struct {
	params Params
	rand   io.Reader
}

// NewArgon2Hasher returns a hasher for p. Zero fields fall back to DefaultParams.
func NewArgon2Hasher(p Params) *Argon2Hasher {
	d := DefaultParams()
	if p.Time == 0 {
		p.Time = d.Time
	}
	if p.MemoryKiB == 0 {
		p.MemoryKiB = d.MemoryKiB
	}
	if p.Threads == 0 {
		p.Threads = d.Threads
	}
	if p.SaltLen == 0 {
		p.SaltLen = d.SaltLen
	}
	if p.KeyLen == 0 {
		p.KeyLen = d.KeyLen
	}
	return &Argon2Hasher{params: p, rand: rand.Reader}
}

// Params returns the parameters used for new hashes.
func (h *Argon2Hasher) Params() Params {
	return h.params
}

func (h *Argon2Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(h.rand, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.MemoryKiB, h.params.Threads, h.params.KeyLen)

	return encode(h.params, salt, key), nil
}

func (h *Argon2Hasher) Verify(encoded, plaintext string) error {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return err
	}

	candidate := argon2.IDKey([]byte(plaintext), salt, p.Time, p.MemoryKiB, p.Threads, uint32(len(key)))
	if subtle.ConstantTimeCompare(key, candidate) != 1 {
		return ErrHashMismatch
	}
	return nil
}

// NeedsRehash reports whether encoded was produced with different cost
// parameters than the hasher's current ones. Malformed hashes always do.
func (h *Argon2Hasher) NeedsRehash(encoded string) bool {
	p, _, key, err := decode(encoded)
	if err != nil {
		return true
	}
	return p.Time != h.params.Time ||
		p.MemoryKiB != h.params.MemoryKiB ||
		p.Threads != h.params.Threads ||
		uint32(len(key)) != h.params.KeyLen
}

func encode(p Params, salt, key []byte) string {
	return fmt.Sprintf("$%s$v=%d$m=%d,t=%d,p=%d$%s$%s",
		variant, argon2.Version, p.MemoryKiB, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decode(encoded string) (Params, []byte, []byte, error) {
	var p Params

	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != variant {
		return p, nil, nil, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return p, nil, nil, ErrMalformedHash
	}
	if parts[2] != fmt.Sprintf("v=%d", version) {
		return p, nil, nil, ErrMalformedHash
	}

	var threads uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Time, &threads); err != nil {
		return p, nil, nil, ErrMalformedHash
	}
	// Sscanf stops after the last verb, so trailing garbage has to be caught here.
	if parts[3] != fmt.Sprintf("m=%d,t=%d,p=%d", p.MemoryKiB, p.Time, threads) {
		return p, nil, nil, ErrMalformedHash
	}
	if p.MemoryKiB == 0 || p.Time == 0 || threads == 0 || threads > 255 {
		return p, nil, nil, ErrMalformedHash
	}
	if p.MemoryKiB > maxMemoryKiB || p.Time > maxTime {
		return p, nil, nil, ErrMalformedHash
	}
	p.Threads = uint8(threads)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return p, nil, nil, ErrMalformedHash
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) < 4 {
		return p, nil, nil, ErrMalformedHash
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))

	return p, salt, key, nil
}
