// Copyright 2025 Lumen Labs Software
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

package gostellar

import (
	"github.com/lumenlabs-io/gostellar/transaction"
	"github.com/lumenlabs-io/gostellar/xdr"
)

// Network describes one deployment of the protocol. The passphrase is part
// of every signature made on the network, so transactions signed for one
// network are invalid on every other
type Network struct {
	Name       string
	Passphrase string
	HorizonURL string
	RPCURL     string
}

// Network definitions
var (
	NetworkMainnet = Network{
		Name:       "mainnet",
		Passphrase: "Public Global Stellar Network ; September 2015",
		HorizonURL: "https://horizon.stellar.org",
	}
	NetworkTestnet = Network{
		Name:       "testnet",
		Passphrase: "Test SDF Network ; September 2015",
		HorizonURL: "https://horizon-testnet.stellar.org",
		RPCURL:     "https://soroban-testnet.stellar.org",
	}
	NetworkFuturenet = Network{
		Name:       "futurenet",
		Passphrase: "Test SDF Future Network ; October 2022",
		HorizonURL: "https://horizon-futurenet.stellar.org",
		RPCURL:     "https://rpc-futurenet.stellar.org",
	}
	NetworkStandalone = Network{
		Name:       "standalone",
		Passphrase: "Standalone Network ; February 2017",
	}

	// NetworkInvalid is used as a return value for lookup functions when a
	// network isn't found
	NetworkInvalid = Network{
		Name: "invalid",
	}
)

// List of valid networks for use in lookup functions
var networks = []Network{
	NetworkMainnet,
	NetworkTestnet,
	NetworkFuturenet,
	NetworkStandalone,
}

// NetworkByName returns a predefined network by name
func NetworkByName(name string) Network {
	for _, network := range networks {
		if network.Name == name {
			return network
		}
	}
	return NetworkInvalid
}

// NetworkByPassphrase returns a predefined network by passphrase
func NetworkByPassphrase(passphrase string) Network {
	for _, network := range networks {
		if network.Passphrase == passphrase {
			return network
		}
	}
	return NetworkInvalid
}

// ID returns the network identifier derived from the passphrase
func (n Network) ID() xdr.Hash {
	return transaction.NetworkID(n.Passphrase)
}
