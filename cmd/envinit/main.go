// Command envinit interactively writes a local .env file with the
// configuration keys the server reads at startup.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func main() {
	fmt.Println("PDF Chatbot Environment Setup")
	fmt.Println(strings.Repeat("=", 40))

	if envFileReady(".env") {
		fmt.Println(".env file already exists with an API key.")
		fmt.Println("You can start the server with: pdfchat")
		return
	}

	reader := bufio.NewReader(os.Stdin)

	fmt.Println("Get your API key from: https://platform.openai.com/api-keys")
	fmt.Println()
	apiKey := prompt(reader, "Enter your OpenAI API key", "")
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "no API key provided")
		os.Exit(1)
	}
	if !strings.HasPrefix(apiKey, "sk-") {
		fmt.Println("Warning: API key does not start with 'sk-'. Please verify it is correct.")
		if !strings.EqualFold(prompt(reader, "Continue anyway? (y/N)", "n"), "y") {
			os.Exit(1)
		}
	}

	fmt.Println()
	fmt.Println("Optional configuration (press Enter for defaults):")
	fmt.Println(strings.Repeat("-", 40))

	model := prompt(reader, "OpenAI model", "gpt-3.5-turbo")
	temperature := promptFloat(reader, "Temperature (0-1)", 0)
	maxTokens := promptInt(reader, "Max tokens", 1000)
	chunkSize := promptInt(reader, "Chunk size", 1000)
	chunkOverlap := promptInt(reader, "Chunk overlap", 150)
	appTitle := prompt(reader, "App title", "PDF Chatbot - Ask Questions About Your Documents")

	content := fmt.Sprintf(`# OpenAI API Configuration
OPENAI_API_KEY=%s

# OpenAI Model Configuration
OPENAI_MODEL=%s
OPENAI_TEMPERATURE=%v
OPENAI_MAX_TOKENS=%d

# Text Processing Configuration
CHUNK_SIZE=%d
CHUNK_OVERLAP=%d
CHUNK_SEPARATORS=\n

# UI Configuration
APP_TITLE=%s
SIDEBAR_TITLE=Your Documents
FILE_UPLOADER_TEXT=Upload a PDF file and start asking questions
QUESTION_INPUT_TEXT=Type your question here

# Authentication (generate with: hashpass)
# APP_USERNAME=
# APP_PASSWORD_HASH=

# Advanced Configuration (Optional)
# OPENAI_BASE_URL=https://api.openai.com/v1
# OPENAI_EMBEDDING_MODEL=text-embedding-3-small
# SERVER_HOST=0.0.0.0
# SERVER_PORT=8080
`, apiKey, model, temperature, maxTokens, chunkSize, chunkOverlap, appTitle)

	if err := os.WriteFile(".env", []byte(content), 0600); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write .env: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(".env file created.")
	fmt.Println("You can now start the server with: pdfchat")
	fmt.Println("Note: keep the .env file out of version control.")
}

func envFileReady(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	content := string(data)
	return strings.Contains(content, "OPENAI_API_KEY=") &&
		!strings.Contains(content, "your_openai_api_key_here")
}

func prompt(reader *bufio.Reader, label, def string) string {
	if def != "" {
		fmt.Printf("%s (default: %s): ", label, def)
	} else {
		fmt.Printf("%s: ", label)
	}
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

func promptInt(reader *bufio.Reader, label string, def int) int {
	for {
		raw := prompt(reader, label, strconv.Itoa(def))
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Println("Invalid input, please enter an integer.")
			continue
		}
		return n
	}
}

func promptFloat(reader *bufio.Reader, label string, def float64) float64 {
	for {
		raw := prompt(reader, label, strconv.FormatFloat(def, 'f', -1, 64))
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Println("Invalid input, please enter a number.")
			continue
		}
		return f
	}
}
