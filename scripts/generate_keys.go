//go:build ignore

// This script generates secure random keys for edge authentication and signs a
// development operator token with them.
// Run with: go run scripts/generate_keys.go -sub alice -roles admin,warehouse
package main

import (
	"crypto/rand"
	"encoding/base64"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func generateSecureKey(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(bytes), nil
}

func main() {
	subject := flag.String("sub", "dev-operator", "operator id placed in the token subject")
	roles := flag.String("roles", "admin", "comma-separated operator roles (admin, warehouse, planner)")
	issuer := flag.String("iss", "", "token issuer, must match JWT_ISSUER when set")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	fmt.Println("=== Kit Service Key Generator ===")
	fmt.Println()

	// 32 bytes = 256 bits for HS256
	jwtSecret, err := generateSecureKey(32)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating JWT secret: %v\n", err)
		os.Exit(1)
	}

	apiKey, err := generateSecureKey(24)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating API key: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   *subject,
		"roles": strings.Split(*roles, ","),
		"iat":   now.Unix(),
		"exp":   now.Add(*ttl).Unix(),
	}
	if *issuer != "" {
		claims["iss"] = *issuer
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(jwtSecret))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error signing token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Add these to your .env file:")
	fmt.Println()
	fmt.Println("AUTH_ENABLED=true")
	fmt.Printf("JWT_SECRET_KEY=%s\n", jwtSecret)
	if *issuer != "" {
		fmt.Printf("JWT_ISSUER=%s\n", *issuer)
	}
	fmt.Printf("API_KEYS=%s\n", apiKey)
	fmt.Println()
	fmt.Printf("# Development token for %q (%s), expires %s\n", *subject, *roles, now.Add(*ttl).Format(time.RFC3339))
	fmt.Printf("Authorization: Bearer %s\n", token)
	fmt.Println()
	fmt.Println("=== IMPORTANT ===")
	fmt.Println("- Never commit these keys to version control")
	fmt.Println("- Production tokens come from the identity provider, not from this script")
}
