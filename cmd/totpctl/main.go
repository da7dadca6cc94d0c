// Command totpctl is the operator tool for one-time code secrets.
//
//	totpctl enroll    -identity testuser -issuer Acme [-qr enroll.png] [-terminal]
//	totpctl provision -identity testuser -secret BASE32 [-attribute TEXT | -attribute-file PATH] [-settings PATH]
//	totpctl verify    -identity testuser -code 123456 (-attribute TEXT | -attribute-file PATH) [-settings PATH]
//	totpctl code      -secret BASE32
//
// provision and verify need the key parts. They are read from TOTPGATE_<name>
// environment variables, then from the -settings file (key file or YAML),
// which defaults to $TOTPGATE_SETTINGS_FILE.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "totpctl:", err)
		os.Exit(1)
	}
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string, stdout, stderr io.Writer) error
}

var commands = []command{
	{name: "enroll", usage: "generate a new secret, its key URI and QR code", run: enrollCmd},
	{name: "provision", usage: "seal a secret as the next directory record", run: provisionCmd},
	{name: "verify", usage: "check a code against a directory attribute", run: verifyCmd},
	{name: "code", usage: "print the current code for a secret", run: codeCmd},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		usage(stderr)
		return errUsage
	}
	for _, c := range commands {
		if c.name == args[0] {
			return c.run(ctx, args[1:], stdout, stderr)
		}
	}
	usage(stderr)
	return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: totpctl <command> [flags]")
	fmt.Fprintln(w)
	for _, c := range commands {
		fmt.Fprintf(w, "  %-10s %s\n", c.name, c.usage)
	}
}
