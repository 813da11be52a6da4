package bip38

import "crypto/aes"

// The record format encrypts fixed 16- and 32-byte buffers with AES-256 in
// ECB mode and no padding. ECB is safe here because every block is keyed by
// scrypt output that is unique per passphrase and salt; each call is an
// independent block transform, never a stream.

func ecbEncrypt(key, src []byte) ([]byte, error) {
	return ecbTransform(key, src, true)
}

func ecbDecrypt(key, src []byte) ([]byte, error) {
	return ecbTransform(key, src, false)
}

func ecbTransform(key, src []byte, encrypt bool) ([]byte, error) {
	if len(src)%aes.BlockSize != 0 {
		return nil, ErrBlockSize
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, len(src))
	for i := 0; i < len(src); i += aes.BlockSize {
		if encrypt {
			block.Encrypt(dst[i:i+aes.BlockSize], src[i:i+aes.BlockSize])
		} else {
			block.Decrypt(dst[i:i+aes.BlockSize], src[i:i+aes.BlockSize])
		}
	}
	return dst, nil
}
