// Package main provides the admin CLI: it signs a short-lived admin token
// and calls the server's admin endpoints.
//
// Usage:
//
//	admin [flags] pause|resume
//	admin [flags] version <n>
//	admin [flags] enable-to-coin <tick> on|off
//	admin [flags] mint-cd <tick> <seconds>
//	admin [flags] token
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"tickmint/internal/api"
)

func main() {
	serverURL := flag.String("server-url", envOr("TICKMINT_SERVER_URL", "http://localhost:8080"), "Server base URL")
	adminSecret := flag.String("admin-secret", os.Getenv("TICKMINT_ADMIN_SECRET"), "HMAC secret for admin tokens")
	subject := flag.String("subject", "admin-cli", "Token subject")
	ttl := flag.Duration("ttl", 5*time.Minute, "Token lifetime")
	flag.Parse()

	logger := log.New(os.Stderr, "[admin] ", log.LstdFlags)

	if *adminSecret == "" {
		logger.Fatal("--admin-secret is required")
	}
	args := flag.Args()
	if len(args) == 0 {
		logger.Fatal("missing subcommand (pause, resume, version, enable-to-coin, mint-cd, token)")
	}

	token, err := api.SignAdminToken([]byte(*adminSecret), *subject, *ttl)
	if err != nil {
		logger.Fatalf("sign token: %v", err)
	}

	client := &client{baseURL: *serverURL, token: token, logger: logger}

	switch args[0] {
	case "pause":
		client.post("/v1/admin/pause", map[string]bool{"paused": true})
	case "resume":
		client.post("/v1/admin/pause", map[string]bool{"paused": false})
	case "version":
		if len(args) != 2 {
			logger.Fatal("usage: version <n>")
		}
		n, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			logger.Fatalf("invalid version %q: %v", args[1], err)
		}
		client.post("/v1/admin/version", map[string]uint64{"version": n})
	case "enable-to-coin":
		if len(args) != 3 || (args[2] != "on" && args[2] != "off") {
			logger.Fatal("usage: enable-to-coin <tick> on|off")
		}
		client.post("/v1/admin/ticks/"+args[1]+"/enable-to-coin", map[string]bool{"enabled": args[2] == "on"})
	case "mint-cd":
		if len(args) != 3 {
			logger.Fatal("usage: mint-cd <tick> <seconds>")
		}
		seconds, err := strconv.ParseUint(args[2], 10, 64)
		if err != nil {
			logger.Fatalf("invalid seconds %q: %v", args[2], err)
		}
		client.post("/v1/admin/ticks/"+args[1]+"/mint-cd", map[string]uint64{"seconds": seconds})
	case "token":
		fmt.Println(token)
	default:
		logger.Fatalf("unknown subcommand %q", args[0])
	}
}

type client struct {
	baseURL string
	token   string
	logger  *log.Logger
}

func (c *client) post(path string, body any) {
	payload, err := json.Marshal(body)
	if err != nil {
		c.logger.Fatalf("marshal body: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		c.logger.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.logger.Fatalf("call %s: %v", path, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode >= 300 {
		c.logger.Fatalf("%s returned %d: %s", path, resp.StatusCode, string(respBody))
	}
	fmt.Println(string(respBody))
}

// envOr returns the env value for key, or fallback when unset.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
