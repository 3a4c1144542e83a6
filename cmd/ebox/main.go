package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/noobiescoder/elabs/pkg/address"
	"github.com/noobiescoder/elabs/pkg/ecdsa"
	"github.com/noobiescoder/elabs/pkg/keccak"
	"github.com/noobiescoder/elabs/pkg/logger"
	"github.com/noobiescoder/elabs/pkg/solc"
)

func main() {
	app := &cli.App{
		Name:  "ebox",
		Usage: "Elabs toolbox for secp256k1 keys, keccak hashing, and solidity compilation",
		Description: `Command line companion for the elabs libraries.

Key material never leaves the process: keys are generated locally, printed
once, and not stored anywhere.`,
		Version: "0.2.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{"EBOX_VERBOSE"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "keygen",
				Usage:  "Generate a new secp256k1 key pair",
				Action: runKeygen,
			},
			{
				Name:  "pubkey",
				Usage: "Derive the public key of a private key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Private key (hex, optional 0x prefix)",
						Required: true,
					},
				},
				Action: runPubkey,
			},
			{
				Name:  "address",
				Usage: "Derive the address of a private or public key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "key", Usage: "Private key (hex)"},
					&cli.StringFlag{Name: "pub", Usage: "Public key (hex, 65-byte uncompressed or 33-byte compressed)"},
				},
				Action: runAddress,
			},
			{
				Name:      "hash",
				Usage:     "Compute the keccak-256 digest of the argument",
				ArgsUsage: "<data>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "hex",
						Usage: "Treat the argument as hex-encoded bytes",
					},
				},
				Action: runHash,
			},
			{
				Name:  "sign",
				Usage: "Sign a digest or message with a private key",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "key",
						Usage:    "Private key (hex)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "digest",
						Usage: "32-byte digest to sign (hex)",
					},
					&cli.StringFlag{
						Name:  "message",
						Usage: "Message to hash with keccak-256 and sign",
					},
				},
				Action: runSign,
			},
			{
				Name:  "recover",
				Usage: "Recover the public key that produced a signature",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "digest",
						Usage:    "32-byte digest the signature covers (hex)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "sig",
						Usage:    "64-byte compact signature (hex)",
						Required: true,
					},
					&cli.UintFlag{
						Name:     "recovery-id",
						Usage:    "Recovery id (0-3)",
						Required: true,
					},
				},
				Action: runRecover,
			},
			{
				Name:      "compile",
				Usage:     "Compile a solidity source file with solc",
				ArgsUsage: "<source.sol>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output-dir",
						Value: "artifacts",
						Usage: "Directory the compiler writes artifacts to",
					},
					&cli.StringFlag{
						Name:  "solc",
						Value: solc.DefaultBinary,
						Usage: "Compiler binary to invoke",
					},
					&cli.StringSliceFlag{
						Name:  "flag",
						Usage: "Extra compiler flag (repeatable)",
					},
				},
				Action: runCompile,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logger.NewLogger(&logger.LoggerConfig{
		Debug: c.Bool("verbose"),
	})
}

func decodeHex(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func runKeygen(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	priv, err := ecdsa.GeneratePrivateKey()
	if err != nil {
		return fmt.Errorf("failed to generate key: %w", err)
	}
	pub := priv.PubKey()
	addr := address.FromPublicKey(pub)
	keyID := fmt.Sprintf("local-key-%s", uuid.New().String())

	l.Debug("Generated secp256k1 key pair", zap.String("keyId", keyID))

	fmt.Printf("keyId:      %s\n", keyID)
	fmt.Printf("privateKey: 0x%s\n", priv.String())
	fmt.Printf("publicKey:  0x%s\n", pub.String())
	fmt.Printf("address:    %s\n", addr.Hex())
	return nil
}

func runPubkey(c *cli.Context) error {
	priv, err := ecdsa.PrivateKeyFromHex(c.String("key"))
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}
	fmt.Printf("0x%s\n", priv.PubKey().String())
	return nil
}

func runAddress(c *cli.Context) error {
	switch {
	case c.IsSet("key"):
		priv, err := ecdsa.PrivateKeyFromHex(c.String("key"))
		if err != nil {
			return fmt.Errorf("invalid private key: %w", err)
		}
		fmt.Println(address.FromPrivateKey(priv).Hex())
	case c.IsSet("pub"):
		pub, err := ecdsa.PublicKeyFromHex(c.String("pub"))
		if err != nil {
			return fmt.Errorf("invalid public key: %w", err)
		}
		fmt.Println(address.FromPublicKey(pub).Hex())
	default:
		return fmt.Errorf("either --key or --pub is required")
	}
	return nil
}

func runHash(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one argument")
	}
	data := []byte(c.Args().First())
	if c.Bool("hex") {
		decoded, err := decodeHex(c.Args().First())
		if err != nil {
			return fmt.Errorf("invalid hex input: %w", err)
		}
		data = decoded
	}
	fmt.Println(keccak.Hash256(data).Hex())
	return nil
}

func runSign(c *cli.Context) error {
	priv, err := ecdsa.PrivateKeyFromHex(c.String("key"))
	if err != nil {
		return fmt.Errorf("invalid private key: %w", err)
	}

	var digest []byte
	switch {
	case c.IsSet("digest"):
		digest, err = decodeHex(c.String("digest"))
		if err != nil {
			return fmt.Errorf("invalid digest hex: %w", err)
		}
	case c.IsSet("message"):
		digest = keccak.Sum256([]byte(c.String("message")))
	default:
		return fmt.Errorf("either --digest or --message is required")
	}

	sig, recoveryID, err := ecdsa.Sign(digest, priv)
	if err != nil {
		return fmt.Errorf("failed to sign: %w", err)
	}
	compact := sig.SerializeCompact()

	fmt.Printf("signature:  0x%s\n", hex.EncodeToString(compact[:]))
	fmt.Printf("recoveryId: %d\n", recoveryID)
	return nil
}

func runRecover(c *cli.Context) error {
	digest, err := decodeHex(c.String("digest"))
	if err != nil {
		return fmt.Errorf("invalid digest hex: %w", err)
	}
	sigBytes, err := decodeHex(c.String("sig"))
	if err != nil {
		return fmt.Errorf("invalid signature hex: %w", err)
	}
	sig, err := ecdsa.ParseCompactSignature(sigBytes)
	if err != nil {
		return fmt.Errorf("invalid signature: %w", err)
	}

	pub, err := ecdsa.RecoverPubKey(digest, sig, ecdsa.RecoveryID(c.Uint("recovery-id")))
	if err != nil {
		return fmt.Errorf("failed to recover public key: %w", err)
	}

	fmt.Printf("publicKey: 0x%s\n", pub.String())
	fmt.Printf("address:   %s\n", address.FromPublicKey(pub).Hex())
	return nil
}

func runCompile(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one source file argument")
	}

	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	compiler := solc.NewWithBinary(c.String("solc"), l)

	version, err := compiler.Version(c.Context)
	if err != nil {
		return fmt.Errorf("failed to detect compiler: %w", err)
	}
	l.Info("Using solidity compiler", zap.String("version", version))

	out, err := compiler.Compile(c.Context, c.Args().First(), c.String("output-dir"), c.StringSlice("flag"))
	if err != nil {
		return err
	}
	if strings.TrimSpace(out) != "" {
		fmt.Println(strings.TrimSpace(out))
	}
	return nil
}
