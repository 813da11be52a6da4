package address

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromPublicKey(t *testing.T) {
	pub, err := hex.DecodeString("0450863ad64a87ae8a2fe83c1af1a8403cb53f53e486d8511dad8a04887e5b23522cd470243453a299fa9e77237716103abc11a1df38855ed6f2ee187e9c582ba6")
	require.NoError(t, err)

	addr := FromPublicKey(pub)
	require.Equal(t, "16UwLL9Risc3QfPqBUvKofHmBQ7wMtjvM", addr)
	require.True(t, Validate(addr))
}

func TestDecode(t *testing.T) {
	addr := FromPublicKey([]byte("any serialized public key"))

	fingerprint, err := Decode(addr)
	require.NoError(t, err)
	require.Len(t, fingerprint, 20)
}

func TestValidateRejects(t *testing.T) {
	require.False(t, Validate(""))
	require.False(t, Validate("not-base58-check"))
	// A valid Base58Check string with the wrong version byte.
	require.False(t, Validate("5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ"))
}
