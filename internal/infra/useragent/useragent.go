package useragent

import (
	"fmt"
	"os"
	"strings"

	"github.com/ua-parser/uap-go/uaparser"
	"go.uber.org/zap"
)

const unknown = "unknown"

// Parser classifies User-Agent strings for click enrichment.
type Parser struct {
	parser *uaparser.Parser
	log    *zap.Logger
}

// DeviceInfo is the click-relevant subset of a parsed User-Agent.
type DeviceInfo struct {
	DeviceType string // mobile, desktop, tablet, bot, unknown
	Browser    string
	OS         string
}

var (
	botIndicators = []string{
		"googlebot", "bingbot", "slurp", "duckduckbot", "baiduspider",
		"yandexbot", "facebookexternalhit", "twitterbot", "linkedinbot",
		"whatsapp", "telegram", "bot", "crawler", "spider",
	}
	tabletDevices = []string{"ipad", "tablet", "kindle", "surface"}
	mobileDevices = []string{"iphone", "android", "blackberry", "windows phone", "mobile", "phone"}
	mobileOS      = []string{"ios", "android", "windows phone", "blackberry os", "firefox os"}
	desktopOS     = []string{"windows", "mac os x", "macos", "linux", "ubuntu", "chrome os", "freebsd"}
)

// NewParser loads regex definitions from path, or the definitions embedded in
// uap-go when path is empty.
func NewParser(path string, log *zap.Logger) (*Parser, error) {
	if log == nil {
		log = zap.NewNop()
	}

	if path == "" {
		return &Parser{parser: uaparser.NewFromSaved(), log: log}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read user agent regexes: %w", err)
	}
	p, err := uaparser.NewFromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse user agent regexes: %w", err)
	}

	log.Info("user agent parser initialized", zap.String("regexes_file", path))
	return &Parser{parser: p, log: log}, nil
}

// Parse never fails; unrecognised input yields "unknown" fields.
func (p *Parser) Parse(userAgent string) DeviceInfo {
	if strings.TrimSpace(userAgent) == "" {
		return DeviceInfo{DeviceType: unknown, Browser: unknown, OS: unknown}
	}

	client := p.parser.Parse(userAgent)
	info := DeviceInfo{
		DeviceType: deviceType(client, userAgent),
		Browser:    family(client.UserAgent.Family),
		OS:         family(client.Os.Family),
	}

	p.log.Debug("parsed user agent",
		zap.String("device_type", info.DeviceType),
		zap.String("browser", info.Browser),
		zap.String("os", info.OS),
	)
	return info
}

func deviceType(client *uaparser.Client, userAgent string) string {
	ua := strings.ToLower(userAgent)
	uaFamily := strings.ToLower(client.UserAgent.Family)
	if containsAny(uaFamily, botIndicators) || containsAny(ua, botIndicators) {
		return "bot"
	}

	device := strings.ToLower(client.Device.Family)
	if device != "" && device != "other" {
		if containsAny(device, tabletDevices) {
			return "tablet"
		}
		if containsAny(device, mobileDevices) {
			return "mobile"
		}
	}

	osFamily := strings.ToLower(client.Os.Family)
	if containsAny(osFamily, mobileOS) {
		switch {
		case strings.Contains(osFamily, "ios") && strings.Contains(ua, "ipad"):
			return "tablet"
		case strings.Contains(osFamily, "android") && !strings.Contains(ua, "mobile"):
			return "tablet"
		}
		return "mobile"
	}
	if containsAny(osFamily, desktopOS) {
		return "desktop"
	}
	return unknown
}

func containsAny(s string, needles []string) bool {
	if s == "" {
		return false
	}
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

func family(s string) string {
	if s == "" || s == "Other" {
		return unknown
	}
	return s
}
