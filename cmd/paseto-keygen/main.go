package main

import (
	"encoding/hex"
	"fmt"

	"github.com/bionicotaku/lingo-utils-pasetox"
)

func main() {
	privateKey, publicKey := pasetox.NewKeypair()
	fmt.Printf("private_key: %s\n", hex.EncodeToString(privateKey))
	fmt.Printf("public_key : %s\n", hex.EncodeToString(publicKey))
}
