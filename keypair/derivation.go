// Copyright 2024 Lumen Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package keypair

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// mnemonicIterations is the PBKDF2 round count fixed by the mnemonic
	// seed standard
	mnemonicIterations = 2048

	// accountPurpose and accountCoinType are the hardened derivation path
	// constants assigned to this network (m/44'/148'/index')
	accountPurpose  uint32 = 44
	accountCoinType uint32 = 148

	hardenedOffset uint32 = 0x80000000
)

// derivationRootKey is the HMAC key that roots the ed25519 derivation tree
var derivationRootKey = []byte("ed25519 seed")

// MnemonicSeed derives the 64-byte binary seed for a mnemonic phrase and
// optional passphrase (PBKDF2-HMAC-SHA512, 2048 rounds). The mnemonic is
// not checked against a word list
func MnemonicSeed(mnemonic string, passphrase string) []byte {
	return pbkdf2.Key(
		[]byte(mnemonic),
		[]byte("mnemonic"+passphrase),
		mnemonicIterations,
		64,
		sha512.New,
	)
}

// FromMnemonic derives the Full keypair at account index of the network's
// derivation path (m/44'/148'/index', all segments hardened) for the given
// mnemonic phrase
func FromMnemonic(mnemonic string, passphrase string, index uint32) (*Full, error) {
	seed := MnemonicSeed(mnemonic, passphrase)
	key := deriveForPath(seed, []uint32{accountPurpose, accountCoinType, index})
	return FromRawSeed(key), nil
}

// deriveForPath walks the hardened ed25519 derivation tree from the binary
// seed through the given path segments
func deriveForPath(seed []byte, path []uint32) [32]byte {
	mac := hmac.New(sha512.New, derivationRootKey)
	mac.Write(seed)
	sum := mac.Sum(nil)
	key, chainCode := sum[:32], sum[32:]
	for _, segment := range path {
		data := make([]byte, 0, 37)
		data = append(data, 0x00)
		data = append(data, key...)
		data = binary.BigEndian.AppendUint32(data, segment|hardenedOffset)
		mac = hmac.New(sha512.New, chainCode)
		mac.Write(data)
		sum = mac.Sum(nil)
		key, chainCode = sum[:32], sum[32:]
	}
	var ret [32]byte
	copy(ret[:], key)
	return ret
}
