package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/bionicotaku/lingo-utils-pasetox"
)

func main() {
	keyHex := flag.String("key", os.Getenv("PASETO_PRIVATE_KEY"), "Hex-encoded 64-byte private key (env PASETO_PRIVATE_KEY)")
	subject := flag.String("subject", "", "Subject claim")
	issuer := flag.String("issuer", "", "Issuer claim")
	audience := flag.String("audience", "", "Audience claim")
	tokenID := flag.String("token-id", "", `Token identifier claim; "new" generates one`)
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime; 0 skips the time claims")

	custom := map[string]string{}
	flag.Func("claim", "Custom claim as name=json (repeatable; bare values are treated as strings)", func(s string) error {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("expected name=value, got %q", s)
		}
		custom[parts[0]] = parts[1]
		return nil
	})
	flag.Parse()

	if *keyHex == "" {
		flag.Usage()
		log.Fatal("private key is required (via flag or PASETO_PRIVATE_KEY)")
	}
	privateKey, err := hex.DecodeString(*keyHex)
	if err != nil {
		log.Fatalf("decode private key: %v", err)
	}
	maker, err := pasetox.NewMaker(privateKey)
	if err != nil {
		log.Fatalf("create maker: %v", err)
	}

	claims := pasetox.NewClaims()
	if *subject != "" {
		claims = claims.WithSubject(*subject)
	}
	if *issuer != "" {
		claims = claims.WithIssuer(*issuer)
	}
	if *audience != "" {
		claims = claims.WithAudience(*audience)
	}
	switch *tokenID {
	case "":
	case "new":
		claims = claims.WithFreshTokenIdentifier()
	default:
		claims = claims.WithTokenIdentifier(*tokenID)
	}
	if *ttl > 0 {
		now := time.Now().UTC()
		claims = claims.
			WithIssuedAt(now.Format(time.RFC3339)).
			WithNotBefore(now.Format(time.RFC3339)).
			WithExpiration(now.Add(*ttl).Format(time.RFC3339))
	}
	for name, raw := range custom {
		var value any
		if err := json.Unmarshal([]byte(raw), &value); err != nil {
			value = raw
		}
		if err := claims.SetClaim(name, value); err != nil {
			log.Fatalf("set claim %q: %v", name, err)
		}
	}

	token, err := maker.CreateToken(claims)
	if err != nil {
		log.Fatalf("create token: %v", err)
	}
	fmt.Println(token)
}
