package bip38

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvuschain/corvus/crypto/base58"
)

// Reference test vectors for the encrypted key scheme.
const (
	vectorPrivHex = "cbf4b9f70470856bb4f40f80b87edb90865997ffee6df315ab166d713af433a5"
	vectorPass    = "TestingOneTwoThree"

	vectorPlain      = "6PRVWUbkzzsbcVac2qwfssoUJAN1Xhrg6bNk8J7Nzm5H7kxEbn2Nh2ZoGg"
	vectorCompressed = "6PYNKZ1EAgYgmQfmNVamxyXVWHzK5s6DGhwP4J5o44cvXdoY7sRzhtpUeo"

	vectorECMult        = "6PfQu77ygVyJLZjfvMLyhLMQbYnu5uguoJJ4kMCLqWwPEdfpwANVS76gTX"
	vectorECMultPrivHex = "a43a940577f4e97f5c4d39eb14ff083a98187c64ea7c99ef7ce460833959a519"

	// EC-multiply with lot/sequence numbers (lot 263183, sequence 1).
	vectorECMultLotSeq        = "6PgNBNNzDkKdhkT6uJntUXwwzQV8Rr2tZcbkDcuC9DZRsS6AtHts4Ypo1j"
	vectorECMultLotSeqPass    = "MOLON LABE"
	vectorECMultLotSeqPrivHex = "44ea95afbf138356a05ea32110dfd627232d0f2991ad221187be356f19fa8190"
)

func vectorPriv(t *testing.T) []byte {
	t.Helper()
	priv, err := hex.DecodeString(vectorPrivHex)
	require.NoError(t, err)
	return priv
}

func TestEncryptVector(t *testing.T) {
	encoded, err := Encrypt(vectorPriv(t), false, vectorPass)
	require.NoError(t, err)
	require.Equal(t, vectorPlain, encoded)
}

func TestEncryptVectorCompressed(t *testing.T) {
	encoded, err := Encrypt(vectorPriv(t), true, vectorPass)
	require.NoError(t, err)
	require.Equal(t, vectorCompressed, encoded)
}

func TestEncryptRejectsShortKey(t *testing.T) {
	_, err := Encrypt(make([]byte, 31), false, vectorPass)
	require.ErrorIs(t, err, ErrPrivateKeyLength)
}

func TestDecryptVector(t *testing.T) {
	result, err := Decrypt(vectorPlain, vectorPass)
	require.NoError(t, err)
	require.False(t, result.Compressed)
	require.Equal(t, vectorPrivHex, hex.EncodeToString(result.PrivateKey))

	result, err = Decrypt(vectorCompressed, vectorPass)
	require.NoError(t, err)
	require.True(t, result.Compressed)
	require.Equal(t, vectorPrivHex, hex.EncodeToString(result.PrivateKey))
}

func TestDecryptWrongPassphrase(t *testing.T) {
	_, err := Decrypt(vectorPlain, "WrongPassphrase")
	require.ErrorIs(t, err, ErrPassphrase)
}

func TestRoundTrip(t *testing.T) {
	priv, err := hex.DecodeString("1111111111111111111111111111111111111111111111111111111111111111")
	require.NoError(t, err)

	for _, compressed := range []bool{false, true} {
		encoded, err := Encrypt(priv, compressed, "correct horse battery staple")
		require.NoError(t, err)
		require.True(t, Verify(encoded))

		result, err := Decrypt(encoded, "correct horse battery staple")
		require.NoError(t, err)
		require.Equal(t, priv, result.PrivateKey)
		require.Equal(t, compressed, result.Compressed)
	}
}

func TestDecryptECMult(t *testing.T) {
	result, err := Decrypt(vectorECMult, vectorPass)
	require.NoError(t, err)
	require.False(t, result.Compressed)
	require.Equal(t, vectorECMultPrivHex, hex.EncodeToString(result.PrivateKey))
}

func TestDecryptECMultLotSequence(t *testing.T) {
	result, err := Decrypt(vectorECMultLotSeq, vectorECMultLotSeqPass)
	require.NoError(t, err)
	require.False(t, result.Compressed)
	require.Equal(t, vectorECMultLotSeqPrivHex, hex.EncodeToString(result.PrivateKey))
}

func TestDecryptStructuralErrors(t *testing.T) {
	record := func(mutate func(r []byte)) string {
		r := make([]byte, recordSize)
		r[0] = prefix
		r[1] = typeDirect
		r[2] = flagPlain
		mutate(r)
		return base58.CheckEncode(r)
	}

	tests := []struct {
		name    string
		encoded string
		want    error
	}{
		{"short record", base58.CheckEncode(make([]byte, recordSize-1)), ErrRecordLength},
		{"bad prefix", record(func(r []byte) { r[0] = 0x02 }), ErrPrefix},
		{"bad type", record(func(r []byte) { r[1] = 0x41 }), ErrType},
		{"bad compression flag", record(func(r []byte) { r[2] = 0x99 }), ErrCompression},
		{"bad ec flag bits", record(func(r []byte) { r[1] = typeECMult; r[2] = 0x25 }), ErrFlagBits},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decrypt(tt.encoded, vectorPass)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecryptRejectsTamper(t *testing.T) {
	tampered := []byte(vectorPlain)
	mid := len(tampered) / 2
	if tampered[mid] == 'a' {
		tampered[mid] = 'b'
	} else {
		tampered[mid] = 'a'
	}
	_, err := Decrypt(string(tampered), vectorPass)
	require.Error(t, err)
}

func TestVerify(t *testing.T) {
	assert.True(t, Verify(vectorPlain))
	assert.True(t, Verify(vectorCompressed))
	assert.True(t, Verify(vectorECMult))
	assert.True(t, Verify(vectorECMultLotSeq))

	assert.False(t, Verify(""))
	assert.False(t, Verify("not-base58-check"))
	assert.False(t, Verify(base58.CheckEncode(make([]byte, recordSize))))
	assert.False(t, Verify(base58.CheckEncode(make([]byte, recordSize-1))))

	record := func(typ, flag byte) string {
		r := make([]byte, recordSize)
		r[0] = prefix
		r[1] = typ
		r[2] = flag
		return base58.CheckEncode(r)
	}

	assert.True(t, Verify(record(typeDirect, flagPlain)))
	assert.True(t, Verify(record(typeDirect, flagCompress)))
	assert.False(t, Verify(record(typeDirect, 0x00)))
	assert.False(t, Verify(record(0x41, flagPlain)))

	for _, flag := range []byte{0x00, 0x04, 0x20, 0x24} {
		assert.True(t, Verify(record(typeECMult, flag)), "flag %#x", flag)
	}
	for _, flag := range []byte{0x01, 0x25, 0xC0, 0xE0} {
		assert.False(t, Verify(record(typeECMult, flag)), "flag %#x", flag)
	}
}

func TestVerifyAcceptsEveryEncryptOutput(t *testing.T) {
	priv := vectorPriv(t)
	for _, pass := range []string{"", "pw", strings.Repeat("long", 32)} {
		encoded, err := Encrypt(priv, true, pass)
		require.NoError(t, err)
		require.True(t, Verify(encoded))
	}
}
