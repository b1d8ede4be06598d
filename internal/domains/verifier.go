// Package domains verifies that a couple's custom wedding domain actually
// points at the platform before requests to it are served. Provisioning at
// the registrar or CDN is someone else's job; this only answers "does DNS
// agree with what the couple claims".
package domains

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/likexian/whois"
	whoisparser "github.com/likexian/whois-parser"
	"github.com/miekg/dns"
)

type Verifier struct {
	resolver *net.Resolver
	client   *dns.Client
	// target is the hostname custom domains must CNAME to, or whose A
	// records they must share.
	target string
}

type Result struct {
	Domain    string     `json:"domain"`
	Verified  bool       `json:"verified"`
	CNAME     string     `json:"cname,omitempty"`
	ARecords  []string   `json:"a_records,omitempty"`
	Registrar string     `json:"registrar,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CheckedAt time.Time  `json:"checked_at"`
}

func NewVerifier(target string) *Verifier {
	return &Verifier{
		resolver: &net.Resolver{
			PreferGo: true,
			Dial: func(ctx context.Context, network, address string) (net.Conn, error) {
				d := net.Dialer{Timeout: 5 * time.Second}
				return d.DialContext(ctx, network, address)
			},
		},
		client: &dns.Client{Timeout: 5 * time.Second},
		target: strings.ToLower(strings.TrimSuffix(target, ".")),
	}
}

// Verify checks the domain's DNS against the platform target and enriches
// the result with WHOIS registration data. A WHOIS failure never blocks
// verification; it only leaves the registrar fields empty.
func (v *Verifier) Verify(ctx context.Context, domain string) (*Result, error) {
	domain = strings.ToLower(strings.TrimSpace(domain))
	result := &Result{
		Domain:    domain,
		CheckedAt: time.Now(),
	}

	cname, err := v.resolver.LookupCNAME(ctx, domain)
	if err == nil && strings.TrimSuffix(cname, ".") != domain {
		result.CNAME = strings.TrimSuffix(cname, ".")
	}
	if result.CNAME == "" {
		// Some resolvers flatten CNAME chains; ask an authoritative-ish
		// server directly before giving up on the record.
		result.CNAME = v.lookupCNAMEDirect(domain)
	}
	if HostMatchesTarget(result.CNAME, v.target) {
		result.Verified = true
	}

	ips, err := v.resolver.LookupHost(ctx, domain)
	if err != nil && result.CNAME == "" {
		return nil, fmt.Errorf("dns lookup failed for %s: %w", domain, err)
	}
	result.ARecords = ips

	// Apex domains cannot CNAME; accept an A record pointing at the
	// target's own addresses.
	if !result.Verified && len(ips) > 0 {
		targetIPs, err := v.resolver.LookupHost(ctx, v.target)
		if err == nil && sharesAddress(ips, targetIPs) {
			result.Verified = true
		}
	}

	v.enrichWhois(domain, result)

	return result, nil
}

func (v *Verifier) enrichWhois(domain string, result *Result) {
	raw, err := whois.Whois(domain)
	if err != nil {
		return
	}

	parsed, err := whoisparser.Parse(raw)
	if err != nil {
		return
	}

	if parsed.Registrar != nil {
		result.Registrar = parsed.Registrar.Name
	}
	if parsed.Domain != nil && parsed.Domain.ExpirationDate != "" {
		if t, err := parseWhoisDate(parsed.Domain.ExpirationDate); err == nil {
			result.ExpiresAt = &t
		}
	}
}

func (v *Verifier) lookupCNAMEDirect(domain string) string {
	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), dns.TypeCNAME)

	r, _, err := v.client.Exchange(m, "8.8.8.8:53")
	if err != nil || r == nil {
		return ""
	}

	for _, ans := range r.Answer {
		if cname, ok := ans.(*dns.CNAME); ok {
			return strings.TrimSuffix(cname.Target, ".")
		}
	}
	return ""
}

// HostMatchesTarget reports whether host equals the target or is a label
// under it, ignoring case and trailing dots.
func HostMatchesTarget(host, target string) bool {
	host = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(host), "."))
	target = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(target), "."))
	if host == "" || target == "" {
		return false
	}
	return host == target || strings.HasSuffix(host, "."+target)
}

func sharesAddress(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func parseWhoisDate(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02-Jan-2006",
	}

	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized whois date: %s", s)
}
