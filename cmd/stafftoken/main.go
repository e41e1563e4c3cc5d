// stafftoken mints a staff bearer token for the upload endpoints, using
// the same config the API server reads. Identity management lives
// outside the service; this is the operational bridge.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"wallcove/internal/config"
	"wallcove/internal/security"
)

func main() {
	subject := flag.String("subject", "", "stable identifier for the staff member")
	name := flag.String("name", "", "display name embedded in the token")
	ttl := flag.Duration("ttl", 0, "token lifetime (defaults to security.stafftokenttl)")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: stafftoken -subject <id> [-name <name>] [-ttl <duration>]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	if cfg.Security.StaffTokenSecret == "" {
		fmt.Fprintln(os.Stderr, "security.stafftokensecret is not configured")
		os.Exit(1)
	}

	lifetime := *ttl
	if lifetime == 0 {
		lifetime = cfg.Security.StaffTokenTTL
	}
	if lifetime == 0 {
		lifetime = 720 * time.Hour
	}

	token, err := security.GenerateStaffToken(cfg.Security.StaffTokenSecret, *subject, *name, lifetime)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generate token:", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
