// Copyright 2026 The tinyblake-go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command tinyblake is a b2sum-style front-end for the library:
// BLAKE2b digests of files, HMAC-BLAKE2b-512 authenticators and
// PBKDF2-HMAC-BLAKE2b-512 key derivation.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tinyblake/tinyblake-go/blake2b"
	"github.com/tinyblake/tinyblake-go/hmac"
	"github.com/tinyblake/tinyblake-go/pbkdf2"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tinyblake:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tinyblake",
		Short:         "BLAKE2b hashing, HMAC and PBKDF2",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(sumCmd(), hmacCmd(), kdfCmd())
	return root
}

func sumCmd() *cobra.Command {
	var (
		length int
		keyHex string
	)
	cmd := &cobra.Command{
		Use:   "sum [file...]",
		Short: "print BLAKE2b digests of files or standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			var key []byte
			if keyHex != "" {
				var err error
				if key, err = hex.DecodeString(keyHex); err != nil {
					return fmt.Errorf("invalid --key: %w", err)
				}
			}
			return eachInput(args, func(name string, r io.Reader) error {
				d, err := blake2b.New(&blake2b.Config{Size: length, Key: key})
				if err != nil {
					return err
				}
				defer d.Close()
				if _, err := io.Copy(d, r); err != nil {
					return err
				}
				out := make([]byte, length)
				if err := d.Finalize(out); err != nil {
					return err
				}
				fmt.Printf("%x  %s\n", out, name)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&length, "length", "l", blake2b.Size, "digest length in bytes (1..64)")
	cmd.Flags().StringVarP(&keyHex, "key", "k", "", "hex-encoded key (up to 64 bytes) for keyed hashing")
	return cmd
}

func hmacCmd() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "hmac --key key [file...]",
		Short: "print HMAC-BLAKE2b-512 authenticators of files or standard input",
		RunE: func(cmd *cobra.Command, args []string) error {
			return eachInput(args, func(name string, r io.Reader) error {
				m, err := hmac.New([]byte(key))
				if err != nil {
					return err
				}
				defer m.Close()
				if _, err := io.Copy(m, r); err != nil {
					return err
				}
				var out [hmac.Size]byte
				if err := m.Finalize(out[:]); err != nil {
					return err
				}
				fmt.Printf("%x  %s\n", out, name)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&key, "key", "k", "", "MAC key")
	cmd.MarkFlagRequired("key")
	return cmd
}

func kdfCmd() *cobra.Command {
	var (
		salt   string
		rounds int
		length int
	)
	cmd := &cobra.Command{
		Use:   "kdf --salt salt",
		Short: "derive a key from a password with PBKDF2-HMAC-BLAKE2b-512",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := readPassword()
			if err != nil {
				return err
			}
			dk, err := pbkdf2.Key(password, []byte(salt), rounds, length)
			for i := range password {
				password[i] = 0
			}
			if err != nil {
				return err
			}
			fmt.Printf("%x\n", dk)
			return nil
		},
	}
	cmd.Flags().StringVarP(&salt, "salt", "s", "", "salt")
	cmd.Flags().IntVarP(&rounds, "rounds", "r", 100000, "iteration count")
	cmd.Flags().IntVarP(&length, "length", "l", 64, "derived key length in bytes")
	return cmd
}

// readPassword prompts on a terminal without echo; otherwise it takes
// the first line of standard input.
func readPassword() ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		return pw, err
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return []byte(strings.TrimRight(line, "\r\n")), nil
}

// eachInput runs fn over each named file, or over standard input when
// no files are given.
func eachInput(args []string, fn func(name string, r io.Reader) error) error {
	if len(args) == 0 {
		return fn("-", os.Stdin)
	}
	for _, name := range args {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = fn(name, f)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}
