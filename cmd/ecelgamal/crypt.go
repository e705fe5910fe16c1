package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vocdoni/ec-elgamal/crypto/arith"
	"github.com/vocdoni/ec-elgamal/crypto/armor"
	"github.com/vocdoni/ec-elgamal/crypto/ecc"
	"github.com/vocdoni/ec-elgamal/crypto/ecc/curves"
	"github.com/vocdoni/ec-elgamal/crypto/elgamal"
	"github.com/vocdoni/ec-elgamal/crypto/keys"
)

func runEncrypt(env *environment, args []string) error {
	fs := newFlagSet(env, "encrypt")
	fs.StringVar(&env.cfg.Curve, "curve", env.cfg.Curve, "curve name")
	pubX := fs.String("pubx", "", "hexadecimal x coordinate of the public key")
	pubY := fs.String("puby", "", "hexadecimal y coordinate of the public key")
	compressed := fs.String("compressed", "", "compressed public key in hex, instead of --pubx and --puby")
	text := fs.String("text", "", "text to encrypt")
	in := fs.String("in", "", "read the text from this file (- for stdin) instead of --text")
	out := fs.String("out", "-", "write the ciphertext to this file (- for stdout)")
	useArmor := fs.Bool("armor", false, "write the ciphertext compressed and base64 encoded")
	legacy := fs.Bool("legacy", false, "use the legacy message encoding without length header")
	if err := parseFlags(env, fs, args); err != nil {
		return err
	}
	c, err := curves.New(env.cfg.Curve)
	if err != nil {
		return err
	}

	var q ecc.Point
	switch {
	case *compressed != "":
		b, err := hex.DecodeString(strings.TrimPrefix(*compressed, "0x"))
		if err != nil {
			return fmt.Errorf("invalid compressed public key: %w", err)
		}
		if q, err = keys.DecompressPublic(b, c); err != nil {
			return err
		}
	case *pubX != "" && *pubY != "":
		if q, err = keys.ParsePublicKey(*pubX, *pubY); err != nil {
			return err
		}
		if !c.IsOnCurve(q) {
			return fmt.Errorf("%w: not on curve %s", keys.ErrInvalidPublicKey, c.Name)
		}
	default:
		return fmt.Errorf("a public key is required: --compressed or --pubx and --puby")
	}

	message := *text
	if *in != "" {
		data, err := readInput(env, *in)
		if err != nil {
			return err
		}
		message = string(data)
	}

	var opts []elgamal.Option
	if *legacy {
		opts = append(opts, elgamal.WithLegacyEncoding())
	}
	ct, err := elgamal.Encrypt(message, q, c, opts...)
	if err != nil {
		return err
	}
	data, err := json.Marshal(&elgamal.Envelope{CurveType: c.Name, Ciphertext: ct})
	if err != nil {
		return err
	}
	result := string(data)
	if *useArmor {
		if result, err = armor.Wrap(result); err != nil {
			return err
		}
	}
	return writeOutput(env, *out, result+"\n")
}

func runDecrypt(env *environment, args []string) error {
	fs := newFlagSet(env, "decrypt")
	fs.StringVar(&env.cfg.Curve, "curve", env.cfg.Curve, "curve name, used when the input is a bare list of points")
	secret := fs.String("secret", "", "hexadecimal secret key")
	in := fs.String("in", "-", "read the ciphertext from this file (- for stdin)")
	useArmor := fs.Bool("armor", false, "the input is compressed and base64 encoded")
	legacy := fs.Bool("legacy", false, "the message uses the legacy encoding without length header")
	if err := parseFlags(env, fs, args); err != nil {
		return err
	}
	if *secret == "" {
		return fmt.Errorf("--secret is required")
	}
	sk, err := arith.ParseHex(*secret)
	if err != nil {
		return fmt.Errorf("invalid secret key: %w", err)
	}
	data, err := readInput(env, *in)
	if err != nil {
		return err
	}
	data = bytes.TrimSpace(data)
	if *useArmor {
		unwrapped, err := armor.Unwrap(string(data))
		if err != nil {
			return err
		}
		data = bytes.TrimSpace([]byte(unwrapped))
	}

	sealed, err := parseCiphertext(data, env.cfg.Curve)
	if err != nil {
		return err
	}
	c, err := sealed.Curve()
	if err != nil {
		return err
	}
	if err := sealed.Ciphertext.Validate(c); err != nil {
		return err
	}
	var opts []elgamal.Option
	if *legacy {
		opts = append(opts, elgamal.WithLegacyEncoding())
	}
	text, err := elgamal.Decrypt(sealed.Ciphertext, sk, c, opts...)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(env.stdout, text)
	return err
}

// parseCiphertext accepts an envelope or a bare JSON list of points, which
// is taken to be on curveType.
func parseCiphertext(data []byte, curveType string) (*elgamal.Envelope, error) {
	if len(data) > 0 && data[0] == '[' {
		var ct elgamal.Ciphertext
		if err := ct.Unmarshal(data); err != nil {
			return nil, fmt.Errorf("invalid ciphertext: %w", err)
		}
		return &elgamal.Envelope{CurveType: curveType, Ciphertext: ct}, nil
	}
	env := &elgamal.Envelope{}
	if err := json.Unmarshal(data, env); err != nil {
		return nil, fmt.Errorf("invalid ciphertext: %w", err)
	}
	return env, nil
}

func readInput(env *environment, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(env.stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(env *environment, path, data string) error {
	if path == "-" {
		_, err := io.WriteString(env.stdout, data)
		return err
	}
	return os.WriteFile(path, []byte(data), 0o600)
}
