package catalog

import (
	"strings"
	"testing"
)

func TestClassifySQLInjection(t *testing.T) {
	c := New()
	inputs := []string{
		"what is SQL Injection?",
		"explain sqli to me",
		"I read about SQLI yesterday",
		"can you compare sql injection and xss",
	}
	for _, in := range inputs {
		res := c.Classify(in)
		if res.Topic != "sqli" || !res.Matched {
			t.Fatalf("input %q: want topic sqli, got %q (matched=%t)", in, res.Topic, res.Matched)
		}
		if !strings.Contains(res.Body, "SQL Injection") {
			t.Fatalf("input %q: body does not describe SQL injection", in)
		}
	}
}

func TestClassifyPriorityOrder(t *testing.T) {
	c := New()
	// privesc is declared before scan, so an input containing both
	// triggers must deterministically return the privesc body.
	res := c.Classify("privesc after an nmap scan")
	if res.Topic != "privesc" {
		t.Fatalf("want privesc to win over scan, got %q", res.Topic)
	}
}

func TestClassifySubstringQuirk(t *testing.T) {
	c := New()
	// Plain substring containment: "scan" fires inside "scanner".
	res := c.Classify("my scanner is broken")
	if res.Topic != "scan" {
		t.Fatalf("substring match on scanner: want scan, got %q", res.Topic)
	}
}

func TestClassifyDefaultEmbedsInput(t *testing.T) {
	c := New()
	in := "tell me about the weather"
	res := c.Classify(in)
	if res.Matched || res.Topic != DefaultTopic {
		t.Fatalf("want default, got %q (matched=%t)", res.Topic, res.Matched)
	}
	if !strings.Contains(res.Body, in) {
		t.Fatalf("default body must embed the original input verbatim: %q", res.Body)
	}
}

func TestClassifyDefaultPreservesCase(t *testing.T) {
	c := New()
	in := "Tell Me About The WEATHER"
	res := c.Classify(in)
	if !strings.Contains(res.Body, in) {
		t.Fatalf("default body must not lower-case the echoed input: %q", res.Body)
	}
}

func TestClassifyIsPure(t *testing.T) {
	c := New()
	for _, in := range []string{"what is a ctf", "nonsense input", "metasploit usage"} {
		a := c.Classify(in)
		b := c.Classify(in)
		if a != b {
			t.Fatalf("classify not idempotent for %q: %+v vs %+v", in, a, b)
		}
	}
}

func TestRuleOrderIsFixed(t *testing.T) {
	c := New()
	want := []string{"sqli", "privesc", "scan", "ctf", "metasploit", "help"}
	rules := c.Rules()
	if len(rules) != len(want) {
		t.Fatalf("want %d rules, got %d", len(want), len(rules))
	}
	for i, r := range rules {
		if r.Topic != want[i] {
			t.Fatalf("rule %d: want %q, got %q", i, want[i], r.Topic)
		}
		if len(r.Triggers) == 0 {
			t.Fatalf("rule %q has no triggers", r.Topic)
		}
	}
}

func TestIsInDomain(t *testing.T) {
	c := New()
	cases := []struct {
		in   string
		want bool
	}{
		{"how do I crack this password hash", true},
		{"my firewall drops packets", true},
		{"BURP suite basics", true},
		{"what's for dinner tonight", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := c.IsInDomain(tc.in); got != tc.want {
			t.Fatalf("IsInDomain(%q) = %t, want %t", tc.in, got, tc.want)
		}
	}
}

func TestIsInDomainDoesNotGateClassify(t *testing.T) {
	c := New()
	in := "completely off-topic question"
	if c.IsInDomain(in) {
		t.Fatalf("setup: input should be out of domain")
	}
	if res := c.Classify(in); res.Body == "" {
		t.Fatalf("out-of-domain input must still get a response")
	}
}
