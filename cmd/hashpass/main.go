// Command hashpass generates the APP_USERNAME / APP_PASSWORD_HASH pair
// used by the login gate. The password is read without echo and only its
// SHA-256 digest is ever printed.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/samruddhip/pdfchat/internal/auth"
)

func main() {
	fmt.Println("PDF Chatbot Password Generator")
	fmt.Println(strings.Repeat("=", 40))
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Enter username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)
	if username == "" {
		fmt.Fprintln(os.Stderr, "username cannot be empty")
		os.Exit(1)
	}

	password, err := readPassword("Enter password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	if password == "" {
		fmt.Fprintln(os.Stderr, "password cannot be empty")
		os.Exit(1)
	}

	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read password: %v\n", err)
		os.Exit(1)
	}
	if password != confirm {
		fmt.Fprintln(os.Stderr, "passwords do not match")
		os.Exit(1)
	}

	hash := auth.HashPassword(password)

	fmt.Println()
	fmt.Println("Add these to your environment:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("export APP_USERNAME=%s\n", username)
	fmt.Printf("export APP_PASSWORD_HASH=%s\n", hash)
	fmt.Println()
	fmt.Println("For a .env file:")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("APP_USERNAME=%s\n", username)
	fmt.Printf("APP_PASSWORD_HASH=%s\n", hash)
}

func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(b), nil
}
