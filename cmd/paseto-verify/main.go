package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bionicotaku/lingo-utils-pasetox"
)

func main() {
	keyHex := flag.String("public-key", os.Getenv("PASETO_PUBLIC_KEY"), "Hex-encoded 32-byte public key (env PASETO_PUBLIC_KEY)")
	token := flag.String("token", os.Getenv("PASETO_TOKEN"), "Token to verify (env PASETO_TOKEN)")
	issuer := flag.String("issuer", "", "Expected issuer claim")
	audience := flag.String("audience", "", "Expected audience claim")
	skew := flag.Duration("skew", 0, "Clock skew tolerated for time claims")
	flag.Parse()

	if *keyHex == "" {
		flag.Usage()
		log.Fatal("public key is required (via flag or PASETO_PUBLIC_KEY)")
	}
	if *token == "" {
		flag.Usage()
		log.Fatal("token is required (via flag or PASETO_TOKEN)")
	}

	publicKey, err := hex.DecodeString(*keyHex)
	if err != nil {
		log.Fatalf("decode public key: %v", err)
	}
	verifier, err := pasetox.NewVerifier(publicKey)
	if err != nil {
		log.Fatalf("create verifier: %v", err)
	}

	opts := []pasetox.VerifyOption{}
	if *issuer != "" {
		opts = append(opts, pasetox.WithExpectedIssuer(*issuer))
	}
	if *audience != "" {
		opts = append(opts, pasetox.WithExpectedAudience(*audience))
	}
	if *skew > 0 {
		opts = append(opts, pasetox.WithClockSkew(*skew))
	}

	claims, err := verifier.VerifyToken(*token, opts...)
	if err != nil {
		log.Fatalf("verification failed: %v", err)
	}

	printClaims(claims)
}

func printClaims(claims pasetox.Claims) {
	fmt.Println("== Token Verified ==")
	if subject, ok := claims.GetSubject(); ok {
		fmt.Printf("subject   : %s\n", subject)
	}
	if issuer, ok := claims.GetIssuer(); ok {
		fmt.Printf("issuer    : %s\n", issuer)
	}
	if audience, ok := claims.GetAudience(); ok {
		fmt.Printf("audience  : %s\n", audience)
	}
	if expiration, ok := claims.GetExpiration(); ok {
		fmt.Printf("expires_at: %s\n", expiration.Format(time.RFC3339))
	}
	fmt.Println("claims:")
	for name, value := range claims.All() {
		fmt.Printf("  %s: %v\n", name, value)
	}
}
