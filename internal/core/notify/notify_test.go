package notify_test

import (
	"strings"
	"testing"

	"joinlist/internal/core/notify"
	"joinlist/internal/platform/testkit"
)

func newComposer() *notify.Composer {
	return notify.New("Acme", "https://acme.example/privacy", "hello@acme.example")
}

func TestWelcomeAndReturningDiffer(t *testing.T) {
	c := newComposer()
	w := c.Welcome("new@example.com")
	r := c.AlreadySubscribed("new@example.com")

	if w.Subject == r.Subject {
		t.Fatalf("subjects must differ: %q", w.Subject)
	}
	testkit.MustContain(t, w.HTML, "You're on the list")
	testkit.MustContain(t, r.HTML, "Already subscribed")
	testkit.MustContain(t, r.HTML, "We'll keep sending updates")

	// copy is trusted literals; apostrophes must not come out entity-escaped
	for _, html := range []string{w.HTML, r.HTML} {
		if strings.Contains(html, "&#39;") {
			t.Fatalf("copy must render verbatim, found escaped apostrophe in %q", html)
		}
	}
}

func TestSharedFooterCannotDrift(t *testing.T) {
	c := newComposer()
	for _, m := range []notify.Message{
		c.Welcome("a@example.com"),
		c.AlreadySubscribed("a@example.com"),
	} {
		testkit.MustContain(t, m.HTML, "https://acme.example/privacy")
		testkit.MustContain(t, m.HTML, "mailto:hello@acme.example")
		testkit.MustContain(t, m.HTML, "Unsubscribe")
	}
}

func TestUnsubscribeLinkEncodesAddress(t *testing.T) {
	c := newComposer()
	m := c.Welcome("user+tag@example.com")
	// '+' must be percent-encoded inside the mailto params
	testkit.MustContain(t, m.HTML, "user%2Btag%40example.com")
	if strings.Contains(m.HTML, "subject=Unsubscribe user") {
		t.Fatalf("mailto params must not contain raw spaces")
	}
	testkit.MustContain(t, m.HTML, "%20")
}

func TestCompleteSelfContainedDocument(t *testing.T) {
	c := newComposer()
	m := c.Welcome("a@example.com")

	testkit.MustContain(t, m.HTML, "<!DOCTYPE html>")
	testkit.MustContain(t, m.HTML, "</html>")
	if strings.Contains(m.HTML, "<link") {
		t.Fatalf("email body must not reference external stylesheets")
	}
	testkit.MustContain(t, m.HTML, "style=")
}

func TestDefaultProduct(t *testing.T) {
	c := notify.New("", "https://x.example/privacy", "x@x.example")
	m := c.Welcome("a@example.com")
	if !strings.Contains(m.Subject, "joinlist") {
		t.Fatalf("blank product should fall back, got %q", m.Subject)
	}
}
