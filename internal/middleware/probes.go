package middleware

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var probePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)wp-admin`),
	regexp.MustCompile(`(?i)wordpress`),
	regexp.MustCompile(`(?i)wp-content`),
	regexp.MustCompile(`(?i)wp-includes`),
	regexp.MustCompile(`(?i)\.env`),
	regexp.MustCompile(`(?i)\.git`),
	regexp.MustCompile(`(?i)config\.php`),
	regexp.MustCompile(`(?i)setup-config`),
	regexp.MustCompile(`(?i)phpmyadmin`),
	regexp.MustCompile(`(?i)admin\.php`),
	regexp.MustCompile(`(?i)xmlrpc\.php`),
	regexp.MustCompile(`(?i)\.sql`),
	regexp.MustCompile(`(?i)\.bak`),
	regexp.MustCompile(`(?i)\.old`),
	regexp.MustCompile(`(?i)backup`),
}

var probeAllowList = map[string]struct{}{
	"/robots.txt":  {},
	"/sitemap.xml": {},
}

// IsProbePath reports whether path looks like a scan for common vulnerable software.
// API routes are never treated as probes since usernames appear in their paths.
func IsProbePath(path string) bool {
	if _, ok := probeAllowList[path]; ok {
		return false
	}
	if path == "/api" || strings.HasPrefix(path, "/api/") {
		return false
	}
	for _, p := range probePatterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}

// BlockProbes rejects vulnerability scans with 403 before they reach routing.
func BlockProbes() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !IsProbePath(c.Path()) {
			return c.Next()
		}
		BlockedProbes.Inc()
		Logger.WarnContext(c.UserContext(), "blocked suspicious request",
			slog.String("path", c.Path()),
			slog.String("ip", c.IP()),
		)
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Status(fiber.StatusForbidden).SendString("Forbidden")
	}
}
