package main

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"text/tabwriter"

	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/crypto/keys"
)

func runCurves(env *environment, args []string) error {
	fs := newFlagSet(env, "curves")
	if err := parseFlags(env, fs, args); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(env.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tBITS\tCHUNK\tDEFAULT")
	for _, name := range curves.Supported() {
		c, err := curves.New(name)
		if err != nil {
			return err
		}
		def := ""
		if name == curves.DefaultCurveType {
			def = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n", c.Name, c.BitSize, elgamal.ChunkLength(c), def)
	}
	return tw.Flush()
}

func runKeygen(env *environment, args []string) error {
	fs := newFlagSet(env, "keygen")
	fs.StringVar(&env.cfg.Curve, "curve", env.cfg.Curve, "curve name")
	passphrase := fs.String("passphrase", "", "derive the secret from this passphrase")
	secret := fs.String("secret", "", "use this hexadecimal secret")
	hashed := fs.Bool("hashed", false, "hash the passphrase with Keccak256 instead of using its bytes")
	if err := parseFlags(env, fs, args); err != nil {
		return err
	}
	if *passphrase != "" && *secret != "" {
		return fmt.Errorf("--passphrase and --secret are mutually exclusive")
	}
	c, err := curves.New(env.cfg.Curve)
	if err != nil {
		return err
	}

	var kp *keys.KeyPair
	switch {
	case *secret != "":
		kp, err = keys.ParseSecretKey(c, *secret)
	case *passphrase != "" && *hashed:
		kp, err = keys.FromPassphraseHash(c, *passphrase)
	case *passphrase != "":
		kp, err = keys.FromPassphrase(c, *passphrase)
	default:
		kp, err = keys.GenerateKey(c, rand.Reader)
	}
	if err != nil {
		return err
	}
	compressed, err := keys.CompressPublic(kp.Public, c)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "curve:      %s\n", c.Name)
	fmt.Fprintf(env.stdout, "secret:     %s\n", kp.SecretHex())
	fmt.Fprintf(env.stdout, "public x:   %s\n", arith.FormatHex(kp.Public.X))
	fmt.Fprintf(env.stdout, "public y:   %s\n", arith.FormatHex(kp.Public.Y))
	fmt.Fprintf(env.stdout, "compressed: %s\n", hex.EncodeToString(compressed))
	return nil
}
