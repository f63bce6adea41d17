package verify

import (
	"net/url"
	"strings"

	"rolescout/internal/model"
)

// AuthorityClassifier decides whether a search result comes from a
// domain whose claims about casting outweigh generic pages.
type AuthorityClassifier struct {
	domains []string
}

// NewAuthorityClassifier creates a classifier from configuration
func NewAuthorityClassifier(config *model.AuthorityConfig) *AuthorityClassifier {
	if config == nil {
		cfg := model.DefaultConfig().Authority
		config = &cfg
	}

	domains := make([]string, 0, len(config.AuthoritativeDomains))
	for _, d := range config.AuthoritativeDomains {
		d = strings.ToLower(strings.TrimSpace(d))
		if d != "" {
			domains = append(domains, d)
		}
	}

	return &AuthorityClassifier{domains: domains}
}

// IsAuthoritative classifies a result link or bare domain
func (a *AuthorityClassifier) IsAuthoritative(link string) bool {
	host := link
	if strings.Contains(link, "/") || strings.Contains(link, ":") {
		if parsed, err := url.Parse(link); err == nil && parsed.Host != "" {
			host = parsed.Host
		}
	}

	host = strings.ToLower(host)
	if idx := strings.Index(host, ":"); idx > 0 {
		host = host[:idx]
	}
	host = strings.TrimPrefix(host, "www.")

	for _, domain := range a.domains {
		if host == domain || strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}
