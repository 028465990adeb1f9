package main

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/EmberHQ/ember-engine/pkg/codec"
	"github.com/EmberHQ/ember-engine/pkg/crypto"
)

type producerKeys struct {
	Mnemonic   string                  `json:"mnemonic"`
	Address    codec.Hex               `json:"address"`
	PublicKey  codec.Hex               `json:"publicKey"`
	PrivateKey codec.Hex               `json:"privateKey,omitempty"`
	Encrypted  *crypto.EncryptedSecret `json:"encryptedPrivateKey,omitempty"`
}

func generateProducerKeys(mnemonic, password string) (*producerKeys, error) {
	privateKey, err := crypto.MnemonicToPrivateKey(mnemonic, "")
	if err != nil {
		return nil, err
	}
	publicKey, err := crypto.GetPublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	keys := &producerKeys{
		Mnemonic:   mnemonic,
		Address:    crypto.GetAddress(publicKey),
		PublicKey:  publicKey,
		PrivateKey: privateKey,
	}
	if password != "" {
		encrypted, err := crypto.EncryptWithPassword(privateKey, password, crypto.PBKDF2Iterations)
		if err != nil {
			return nil, err
		}
		keys.Encrypted = encrypted
		keys.PrivateKey = nil
	}
	return keys, nil
}

func GetKeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "keys",
		Usage: "Producer key commands",
		Subcommands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "generate a new producer key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "mnemonic",
						Usage: "Mnemonic to derive the key from",
					},
					&cli.StringFlag{
						Name:  "password",
						Usage: "Password to encrypt the private key with",
					},
				},
				Action: func(c *cli.Context) error {
					mnemonic := c.String("mnemonic")
					if mnemonic == "" {
						var err error
						mnemonic, err = crypto.GenerateMnemonic()
						if err != nil {
							return err
						}
					}
					keys, err := generateProducerKeys(mnemonic, c.String("password"))
					if err != nil {
						return err
					}
					jsonKeys, err := json.MarshalIndent(keys, "", "  ")
					if err != nil {
						return err
					}
					fmt.Println(string(jsonKeys))
					return nil
				},
			},
		},
	}
}
