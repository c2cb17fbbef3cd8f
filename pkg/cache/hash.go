package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// keyVersion is part of every artifact key. Bump it when a sink or the
// layout engine changes its output for unchanged inputs.
const keyVersion = "v1"

// artifactKey returns "artifact:<version>:<format>:<digest>". The format
// stays readable so that a backend can be inspected per output type.
func artifactKey(o ArtifactKeyOpts) string {
	h := sha256.New()
	fmt.Fprintf(h, "chord=%s\x00style=%s\x00mode=%s\x00", o.Chord, o.StyleHash, o.Mode)
	for _, f := range []float64{o.Width, o.Height, o.Scale} {
		h.Write([]byte(strconv.FormatFloat(f, 'g', -1, 64)))
		h.Write([]byte{0})
	}
	return strings.Join([]string{"artifact", keyVersion, o.Format, hex.EncodeToString(h.Sum(nil))}, ":")
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
