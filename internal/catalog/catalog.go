// Package catalog holds the canned cybersecurity responses GENGAR falls
// back to when no model is available. Classification is a pure function of
// the rule table and the input string.
package catalog

import (
	"fmt"
	"strings"
)

// Rule pairs a topic with its trigger substrings and canned body.
// Rules are evaluated in declaration order; the first match wins.
type Rule struct {
	Topic    string
	Triggers []string
	Body     string
}

// Result is the outcome of classifying one input.
type Result struct {
	Topic   string
	Body    string
	Matched bool
}

// DefaultTopic is reported when no rule matched.
const DefaultTopic = "default"

type Catalog struct {
	rules []Rule
}

// New returns the catalog with the fixed rule order:
// sqli, privesc, scan, ctf, metasploit, help.
func New() *Catalog {
	return &Catalog{rules: defaultRules}
}

// Classify lower-cases input once and returns the body of the first rule
// whose trigger occurs anywhere in it. Matching is plain substring
// containment, so "scan" also fires inside "scanner"; that looseness is
// load-bearing and covered by tests. When nothing matches, the default
// body embeds the original input verbatim.
func (c *Catalog) Classify(input string) Result {
	lower := strings.ToLower(input)
	for _, r := range c.rules {
		for _, t := range r.Triggers {
			if strings.Contains(lower, t) {
				return Result{Topic: r.Topic, Body: r.Body, Matched: true}
			}
		}
	}
	return Result{
		Topic: DefaultTopic,
		Body:  fmt.Sprintf(defaultBody, input),
	}
}

// Rules returns a copy of the rule table in match order, so callers can
// inspect the order without being able to mutate it.
func (c *Catalog) Rules() []Rule {
	out := make([]Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// IsInDomain reports whether input touches any known cybersecurity
// keyword. The list is a superset of the rule triggers and is used only to
// label interactions for logging; it never gates a response.
func (c *Catalog) IsInDomain(input string) bool {
	lower := strings.ToLower(input)
	for _, kw := range domainKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var domainKeywords = []string{
	"hack", "security", "vulnerability", "exploit", "penetration",
	"ctf", "flag", "shell", "reverse", "payload", "injection",
	"xss", "sqli", "csrf", "lfi", "rfi", "privesc", "escalation",
	"nmap", "metasploit", "burp", "wireshark", "kali", "linux",
	"windows", "network", "port", "scan", "firewall", "vpn",
	"encryption", "crypto", "hash", "password", "brute", "force",
}

var defaultRules = []Rule{
	{
		Topic:    "sqli",
		Triggers: []string{"sql injection", "sqli"},
		Body: `🔍 SQL Injection (SQLi) is a web security vulnerability that allows attackers to
interfere with database queries. It occurs when user input is directly concatenated
into SQL statements without proper sanitization.

Common types:
• Union-based SQLi
• Boolean-based SQLi
• Time-based SQLi
• Error-based SQLi

Prevention: Use parameterized queries, input validation, and proper escaping.`,
	},
	{
		Topic:    "privesc",
		Triggers: []string{"privilege escalation", "privesc"},
		Body: `🔐 Privilege Escalation is the process of gaining higher-level permissions on a
system than originally intended. This is a critical phase in penetration testing.

Common techniques:
• Linux: SUID binaries, cron jobs, kernel exploits
• Windows: Token manipulation, service abuse, registry exploits
• Web: File upload bypass, command injection

Tools: LinPEAS, WinPEAS, PowerSploit, Metasploit`,
	},
	{
		Topic:    "scan",
		Triggers: []string{"nmap", "scan"},
		Body: `📡 Nmap is a powerful network scanning tool used for discovery and security auditing.

Common commands:
• nmap -sC -sV [IP] - Basic scan with scripts and version detection
• nmap -p- [IP] - Scan all ports
• nmap --script vuln [IP] - Vulnerability scan
• nmap -A [IP] - Aggressive scan

Remember to only scan systems you own or have permission to test.`,
	},
	{
		Topic:    "ctf",
		Triggers: []string{"ctf", "capture the flag"},
		Body: `🏁 Capture The Flag (CTF) competitions are cybersecurity challenges that test
various skills including:

Categories:
• Web Exploitation - SQLi, XSS, file uploads
• Reverse Engineering - Binary analysis, malware analysis
• Cryptography - Encryption/decryption challenges
• Forensics - File analysis, memory dumps
• Steganography - Hidden data in files/images

Platforms: TryHackMe, Hack The Box, PicoCTF, OverTheWire`,
	},
	{
		Topic:    "metasploit",
		Triggers: []string{"metasploit", "msf"},
		Body: `💥 Metasploit Framework is a penetration testing platform that provides tools for:

• Exploit development and execution
• Post-exploitation modules
• Payload generation
• Auxiliary modules for reconnaissance

Common commands:
• msfconsole - Start Metasploit console
• search [exploit] - Search for exploits
• use [module] - Load a module
• set [option] [value] - Configure options
• exploit - Execute the module

Always use responsibly and only on authorized systems.`,
	},
	{
		Topic:    "help",
		Triggers: []string{"help", "what can you do"},
		Body: `🤖 I'm G.E.N.G.A.R, your cybersecurity AI assistant! I can help with:

🔍 Security Concepts:
• Explaining vulnerabilities and attack vectors
• Describing penetration testing methodologies
• Clarifying security tools and their usage

🏁 CTF Assistance:
• Explaining challenge types and techniques
• Providing guidance on problem-solving approaches
• Sharing relevant tools and resources

🛠️ Technical Support:
• Command explanations and usage
• Tool recommendations for specific tasks
• Best practices and security guidelines

💡 Just ask me about any cybersecurity topic, tool, or technique!`,
	},
}

const defaultBody = `🤖 I understand you're asking about: "%s"

I'm G.E.N.G.A.R, a cybersecurity-focused AI assistant. I can help with:
• Security concepts and vulnerabilities
• Penetration testing techniques
• CTF challenges and problem-solving
• Tool usage and recommendations
• Security best practices

Try asking me about specific topics like "SQL injection", "privilege escalation",
"nmap scanning", or "CTF challenges" for detailed explanations!`
